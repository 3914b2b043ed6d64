package main

import (
	"fmt"
	"log"

	"rawabit/internal/database"
	"rawabit/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo users, content and conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to seed a %s database", cfg.Env)
			}
			db, err := database.Connect(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if !cmd.Flags().Changed("group-title") && cfg.GroupChatTitle != "" {
				opts.GroupTitle = cfg.GroupChatTitle
			}

			sum, err := seed.NewSeeder(db, opts).Run()
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			log.Printf("seeded %d users, %d friendships, %d pending requests, %d lexicon entries",
				sum.Users, sum.Friendships, sum.Pending, sum.Lexicon)
			for kind, n := range sum.Content {
				log.Printf("  %-8s %d", kind, n)
			}
			log.Printf("all users share the password %q", seed.DefaultPassword)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.NumUsers, "users", opts.NumUsers, "number of users to create")
	f.IntVar(&opts.ItemsPerKind, "items", opts.ItemsPerKind, "average content items per kind")
	f.IntVar(&opts.LexiconPerKind, "lexicon", opts.LexiconPerKind, "words and sentences to create, each")
	f.IntVar(&opts.FriendsPerUser, "friends", opts.FriendsPerUser, "friends per user in the generated mesh")
	f.IntVar(&opts.MessagesPerChat, "messages", opts.MessagesPerChat, "messages per conversation")
	f.StringVar(&opts.GroupTitle, "group-title", opts.GroupTitle, "title of the group chat")
	f.BoolVar(&opts.ShouldClean, "clean", opts.ShouldClean, "delete existing data first")
	f.BoolVar(&opts.SkipBcrypt, "skip-bcrypt", false, "store the plain password (faster, login will not work)")
	f.BoolVar(&opts.DryRun, "dry-run", false, "build everything without writing")
	f.IntVar(&opts.MaxDays, "max-days", opts.MaxDays, "spread created_at over this many days")
	return cmd
}
