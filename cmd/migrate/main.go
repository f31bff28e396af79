package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"gamecontest/internal/logging"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()
	log := logging.NewLogger("migrate")

	cfg := loadMigrateConfig()
	if err := validateCommand(*command, *name); err != nil {
		log.Fatal(err)
	}

	if *command == "create" {
		if err := goose.Create(nil, cfg.Dir, *name, "sql"); err != nil {
			log.WithError(err).Fatal("create migration")
		}
		log.WithField("name", *name).Info("migration created")
		return
	}

	pool, err := pgxpool.New(context.Background(), cfg.DSN)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.WithError(err).Fatal("set dialect")
	}

	switch *command {
	case "up":
		err = goose.Up(db, cfg.Dir)
	case "down":
		err = goose.Down(db, cfg.Dir)
	case "status":
		err = goose.Status(db, cfg.Dir)
	}
	if err != nil {
		log.WithError(err).WithField("command", *command).Fatal("migration failed")
	}
	log.WithFields(logrus.Fields{"command": *command, "dir": cfg.Dir}).Info("migrations done")
}
