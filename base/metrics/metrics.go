/*Package metrics wraps datadog-go to facilitate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/gosale/base/env"
	"github.com/x-xyz/gosale/base/log"
)

// TagValueNA is used for tags whose values are not available.
const TagValueNA = "n/a"

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

const (
	// ddRate is the rate to pass metrics to the datadog agent, 1 means always
	ddRate = 1
	// buffer this many counters before flushing to the statsd agent
	bufferMetrics = 10
	ddPort        = 8125
)

var (
	initOnce = sync.Once{}
	ddClient statsCli
	noop     int32
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initDDClient() {
	host := viper.GetString("datadog_host")
	if host == "" {
		// metrics become no-ops without an agent, e.g. in tests
		atomic.StoreInt32(&noop, 1)
		return
	}
	addr := fmt.Sprintf("%s:%d", host, ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")
	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	ddClient = cli
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &metrics{
		pkgName: pkgName,
		ddTags: []string{
			// using an empty host removes all tags associated with host
			"host:",
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type metrics struct {
	pkgName string
	ddTags  []string
}

func (mt *metrics) bump(fn func(statsCli) error, typ, key string) {
	initOnce.Do(initDDClient)
	if atomic.LoadInt32(&noop) == 1 {
		return
	}
	if err := fn(ddClient); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": typ}).Error("Bump fail")
	}
}

func (mt *metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.bump(func(cli statsCli) error {
		return cli.Gauge(mt.pkgName+"."+key, val, append(mt.ddTags, parseTag(tags)...), ddRate)
	}, "BumpAvg", key)
}

func (mt *metrics) BumpSum(key string, val float64, tags ...string) {
	mt.bump(func(cli statsCli) error {
		return cli.Count(mt.pkgName+"."+key, int64(val), append(mt.ddTags, parseTag(tags)...), ddRate)
	}, "BumpSum", key)
}

func (mt *metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.bump(func(cli statsCli) error {
		return cli.Histogram(mt.pkgName+"."+key, val, append(mt.ddTags, parseTag(tags)...), ddRate)
	}, "BumpHistogram", key)
}

// BumpTime starts a timer; End() records the elapsed duration:
//
//	defer s.BumpTime("my.function").End()
func (mt *metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		mt:    mt,
		start: time.Now(),
		key:   mt.pkgName + "." + key,
		tags:  append(mt.ddTags, parseTag(tags)...),
	}
}

func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

type timeTracker struct {
	mt    *metrics
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	d := time.Since(t.start)
	dur := float64(d/time.Millisecond) + float64(d%time.Millisecond)*1e-6
	t.mt.bump(func(cli statsCli) error {
		return cli.TimeInMilliseconds(t.key, dur, t.tags, ddRate)
	}, "BumpTime", t.key)
}
