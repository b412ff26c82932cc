// Package notifier pushes sale events to a Discord channel. Failures
// are logged and swallowed, the notifier never interferes with the
// listing lifecycle.
package notifier

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
)

type DiscordNotifierCfg struct {
	BotKey    string
	ChannelId string
	Paytoken  domain.PayTokenRepo
}

type discordNotifier struct {
	cfg     DiscordNotifierCfg
	discord *discordgo.Session
}

func NewDiscordNotifier(cfg DiscordNotifierCfg) (listing.Notifier, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return &discordNotifier{cfg, discord}, nil
}

func (n *discordNotifier) Notify(c ctx.Ctx, l *listing.Listing, act *listing.Activity) {
	title, ok := titles[act.Type]
	if !ok {
		return
	}

	price := act.Amount
	if paytoken, err := n.cfg.Paytoken.FindOne(c, l.Token.ChainId, act.Currency); err == nil {
		if raw, perr := domain.ParseAmount(act.Amount); perr == nil {
			formatted, _ := decimal.NewFromBigInt(raw, int32(-paytoken.TokenDecimals)).Float64()
			price = fmt.Sprintf("%s %s", strconv.FormatFloat(formatted, 'f', -1, 64), paytoken.Symbol)
		}
	}

	msg := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("Listing #%d, token %s/%s", l.ListingId, l.Token.Contract, l.Token.TokenId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(l.Seller)},
			{Name: "Account", Value: string(act.Account)},
			{Name: "Price", Value: price},
		},
	}

	if _, err := n.discord.ChannelMessageSendEmbed(n.cfg.ChannelId, msg); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
			"type":      act.Type,
		}).Warn("discord notify failed")
	}
}

var titles = map[listing.ActivityType]string{
	listing.ActivityTypePurchase:      "Item sold!",
	listing.ActivityTypeBid:           "New bid!",
	listing.ActivityTypeOfferAccepted: "Offer accepted!",
	listing.ActivityTypeFinalized:     "Sale finalized!",
}
