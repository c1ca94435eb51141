package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pagewire/pagewire/cmd/pagewire/internal"
	"github.com/pagewire/pagewire/pkg/bus"
	"github.com/pagewire/pagewire/pkg/messenger"
)

func gatewayCmd(debug bool) error {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	client, err := messenger.New(cfg, messenger.WithLogger(log))
	if err != nil {
		return err
	}

	eb := bus.NewEventBus()
	defer eb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registerHandlers(ctx, client, eb, log)

	go respondLoop(ctx, eb, log)
	go sendLoop(ctx, client, eb, log)

	mux := http.NewServeMux()
	mux.Handle(client.WebhookPath(), client.Webhook())

	addr := fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("path", client.WebhookPath()).Msg("gateway listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// registerHandlers bridges classified webhook events onto the bus.
func registerHandlers(ctx context.Context, client *messenger.Client, eb *bus.EventBus, log zerolog.Logger) {
	client.OnMessage(func(ev *messenger.MessageEvent) {
		in := bus.InboundEvent{
			Kind:        bus.KindMessage,
			SenderID:    ev.SenderID,
			RecipientID: ev.RecipientID,
			Text:        ev.Text,
			Media:       flattenMedia(ev.Attachments),
		}
		if err := eb.PublishInbound(ctx, in); err != nil {
			log.Warn().Err(err).Msg("dropping inbound message")
		}
	})

	client.OnPostback(func(ev *messenger.PostbackEvent) {
		in := bus.InboundEvent{
			Kind:        bus.KindPostback,
			SenderID:    ev.SenderID,
			RecipientID: ev.RecipientID,
			Payload:     ev.Payload,
			Ref:         ev.Ref,
		}
		if err := eb.PublishInbound(ctx, in); err != nil {
			log.Warn().Err(err).Msg("dropping inbound postback")
		}
	})

	client.OnOptIn(func(ev *messenger.OptInEvent) {
		in := bus.InboundEvent{
			Kind:        bus.KindOptIn,
			SenderID:    ev.SenderID,
			RecipientID: ev.RecipientID,
			Ref:         ev.Ref,
		}
		if err := eb.PublishInbound(ctx, in); err != nil {
			log.Warn().Err(err).Msg("dropping inbound optin")
		}
	})

	client.OnDelivery(func(ev *messenger.DeliveryEvent) {
		log.Debug().Str("sender", ev.SenderID).Strs("mids", ev.MessageIDs).Msg("delivery receipt")
	})

	client.OnEcho(func(ev *messenger.EchoEvent) {
		log.Debug().Str("recipient", ev.RecipientID).Msg("echo received")
	})

	client.OnError(func(ev *messenger.ErrorEvent) {
		log.Error().Str("delivery_id", ev.DeliveryID).Err(ev.Err).Msg("webhook dispatch error")
	})
}

// respondLoop is the example application: it echoes text back and
// acknowledges postbacks.
func respondLoop(ctx context.Context, eb *bus.EventBus, log zerolog.Logger) {
	for {
		in, ok := eb.ConsumeInbound(ctx)
		if !ok {
			return
		}

		var reply string
		switch in.Kind {
		case bus.KindMessage:
			if in.Text != "" {
				reply = "You said: " + in.Text
			} else if len(in.Media) > 0 {
				reply = fmt.Sprintf("Got %d attachment(s)", len(in.Media))
			}
		case bus.KindPostback:
			reply = "Postback received: " + in.Payload
		case bus.KindOptIn:
			reply = "Thanks for opting in!"
		}
		if reply == "" {
			continue
		}

		if err := eb.PublishOutbound(ctx, bus.OutboundSend{RecipientID: in.SenderID, Text: reply}); err != nil {
			log.Warn().Err(err).Msg("dropping reply")
		}
	}
}

func sendLoop(ctx context.Context, client *messenger.Client, eb *bus.EventBus, log zerolog.Logger) {
	for {
		out, ok := eb.ConsumeOutbound(ctx)
		if !ok {
			return
		}
		if _, err := client.SendText(ctx, out.RecipientID, out.Text); err != nil {
			log.Error().Err(err).Str("recipient", out.RecipientID).Msg("send failed")
		}
	}
}

func flattenMedia(attachments map[string][]messenger.AttachmentLocation) []string {
	if len(attachments) == 0 {
		return nil
	}
	var media []string
	for _, locs := range attachments {
		for _, loc := range locs {
			if loc.URL != "" {
				media = append(media, loc.URL)
			} else if loc.Coordinates != nil {
				media = append(media, fmt.Sprintf("geo:%v,%v", loc.Coordinates.Lat, loc.Coordinates.Long))
			}
		}
	}
	// Map iteration order is random; keep output stable for logs.
	sort.Strings(media)
	return media
}
