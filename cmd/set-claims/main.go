package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/firebase"
	"fitness-tracker/backend/internal/store"
)

func main() {
	email := flag.String("email", "", "target account email")
	role := flag.String("role", user.RoleAdmin, "role to grant: member, trainer or admin")
	flag.Parse()
	if *email == "" {
		log.Fatal("email is required: -email=someone@example.com")
	}
	if !user.IsValidRole(*role) {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer clients.Close()

	db, err := store.Connect(ctx, store.Options{URI: cfg.MongoURL, Database: cfg.MongoDatabase})
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer db.Close(context.Background())

	users := user.NewService(user.NewRepo(db.Database))
	res, err := users.SetRole(ctx, *email, *role)
	if err != nil {
		log.Fatalf("set stored role: %v", err)
	}
	if res.MatchedCount == 0 {
		log.Printf("warning: no user document for %s, only claims will be set", *email)
	}

	if err := (firebase.ClaimsSync{Users: clients.Auth}).SyncRole(ctx, *email, *role); err != nil {
		log.Fatalf("set claims: %v", err)
	}

	fmt.Printf("ok: role %s set for %s\n", *role, *email)
}
