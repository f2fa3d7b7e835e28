package relay

import (
	"errors"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/pkg/apicall/autoretry"
	"github.com/hashicorp-forge/adminportal/pkg/database"
	"github.com/hashicorp-forge/adminportal/pkg/kafka"
	"github.com/hashicorp-forge/adminportal/pkg/notifications/backends"
	"github.com/hashicorp-forge/adminportal/pkg/notifications/relay"
)

var errNoBackends = errors.New("no local notification backends are enabled; enable ui, log, audit or ntfy")

// Command consumes the notification topic and delivers each notification to
// the local backends.
type Command struct {
	*base.Command

	configPath string
	group      string
}

func (c *Command) Synopsis() string {
	return "Deliver notifications published by other consoles to local backends"
}

func (c *Command) Help() string {
	return `Usage: adminportal notifications relay [options]

  Consume the Kafka topic written by the kafka notification backend and
  deliver every notification to the ui, log, audit and ntfy backends
  enabled in the configuration file. Run one relay with the audit backend
  to keep a shared audit trail for every administrator.

  Brokers and topic come from the notifications.kafka block; the kafka
  backend itself is never used by the relay. Retryable delivery failures
  follow the retry block. The relay runs until interrupted.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("notifications relay", flag.ContinueOnError))
	base.AddConfigFlag(f, &c.configPath)
	f.StringVar(&c.group, "group", "", "Consumer group. Overrides notifications.kafka.consumer_group.")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.configPath)
	if err != nil {
		return c.Exit(err)
	}

	local := *cfg.Notifications
	kc := local.Kafka
	if kc == nil {
		kc = &backends.KafkaConfig{}
	}
	local.Kafka = nil

	deps := backends.Deps{UI: c.UI, Logger: c.Log, Color: cfg.UseColor()}
	if local.Audit != nil && local.Audit.Enabled {
		db, err := c.OpenAuditDB(cfg)
		if err != nil {
			return c.Exit(err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		deps.Audit = database.NewAuditStore(db)
	}

	registry, err := backends.NewRegistry(&local, deps)
	if err != nil {
		return c.Exit(fmt.Errorf("error configuring notifications: %w", err))
	}
	defer registry.Close()

	handlers := registry.Handlers()
	if len(handlers) == 0 {
		return c.Exit(errNoBackends)
	}

	retry, err := cfg.RetryConfig()
	if err != nil {
		return c.Exit(err)
	}

	group := c.group
	if group == "" {
		group = kc.ConsumerGroup
	}
	brokers := kafka.Brokers(kc.Brokers)
	consumer, err := kafka.NewConsumer(brokers, kc.Topic, group)
	if err != nil {
		return c.Exit(err)
	}
	defer consumer.Close()

	ctx, cancel := base.Context()
	defer cancel()

	if err := kafka.EnsureTopic(ctx, consumer, kafka.Topic(kc.Topic), 1); err != nil {
		c.Log.Warn("could not ensure notification topic exists", "error", err)
	}

	c.Log.Info("relaying notifications",
		"brokers", brokers,
		"topic", kafka.Topic(kc.Topic),
		"group", kafka.ConsumerGroup(group),
		"backends", registry.GetBackendNames(),
	)
	r := relay.New(consumer, handlers, autoretry.NewBackOff(retry), c.Log.Named("relay"))
	return c.Exit(r.Run(ctx))
}
