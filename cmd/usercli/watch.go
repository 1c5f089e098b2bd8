package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"user-admin/internal/auth"
	"user-admin/internal/config"
	"user-admin/internal/events"
)

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	group := fs.String("group", "", "consumer group, a fresh one per run when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(a.cfg.KafkaBrokers) == 0 {
		return errors.New("watch needs --kafka-brokers or KAFKA_BROKERS")
	}
	if *group == "" {
		*group = "usercli-" + uuid.NewString()
	}

	reader := config.NewKafkaReader(a.cfg.KafkaBrokers, a.cfg.KafkaTopic, *group)
	consumer := events.NewConsumer(reader, a.log)

	fmt.Fprintf(a.out, "watching %s\n", a.cfg.KafkaTopic)
	return consumer.Run(ctx, func(e events.Event) error {
		_, err := fmt.Fprintf(a.out, "%s %-7s %d %s <%s>\n", e.Time.Format(time.RFC3339), e.Kind, e.User.ID, e.User.Name, e.User.Email)
		return err
	})
}

func (a *app) token(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "usercli", "token subject")
	name := fs.String("name", "", "name claim")
	email := fs.String("email", "", "email claim")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if a.cfg.JWTSecret == "" {
		return errors.New("token needs --jwt-secret or JWT_SECRET")
	}

	token, err := auth.NewToken(a.cfg.JWTSecret, *subject, *name, *email, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, token)
	return err
}
