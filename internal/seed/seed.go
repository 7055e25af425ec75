// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seed loads the demo accounts and posts used for local walkthroughs.

Running it repeatedly is safe: existing users are looked up instead of
re-created and posts are matched by title.
*/
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/secureblog/internal/auth"
	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/post"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "password123"

// DemoUsers are created in order; the first one owns the demo posts.
var DemoUsers = []string{"demo1", "maze1"}

// DemoPosts are keyed by title for idempotency.
var DemoPosts = []post.CreatePostInput{
	{Title: "[DEMO] Welcome Post", Content: "This is seeded demo content."},
	{Title: "[DEMO] XSS Payload Example", Content: "<img src=x onerror=alert(1) />"},
}

// Dependencies holds what the seeder writes through.
type Dependencies struct {
	Accounts *auth.Service
	Users    auth.UserRepository
	Posts    *post.Service
	Logger   *slog.Logger
}

// Report counts the rows a run actually inserted.
type Report struct {
	UsersCreated int
	PostsCreated int
}

// Run ensures the demo data exists.
func Run(ctx context.Context, deps Dependencies) (Report, error) {
	var report Report

	ownerID := ""
	for _, username := range DemoUsers {
		user, created, err := ensureUser(ctx, deps, username)
		if err != nil {
			return report, err
		}
		if created {
			report.UsersCreated++
		}
		if ownerID == "" {
			ownerID = user.ID
		}
	}

	existing, err := deps.Posts.List(ctx)
	if err != nil {
		return report, fmt.Errorf("seed: list posts: %w", err)
	}
	titles := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		titles[p.Title] = struct{}{}
	}

	for _, input := range DemoPosts {
		if _, ok := titles[input.Title]; ok {
			continue
		}
		if _, err := deps.Posts.Create(ctx, ownerID, input); err != nil {
			return report, fmt.Errorf("seed: create post %q: %w", input.Title, err)
		}
		report.PostsCreated++
	}

	if deps.Logger != nil {
		deps.Logger.Info("seed_completed",
			slog.Int("users_created", report.UsersCreated),
			slog.Int("posts_created", report.PostsCreated),
		)
	}
	return report, nil
}

func ensureUser(ctx context.Context, deps Dependencies, username string) (*auth.User, bool, error) {
	user, err := deps.Accounts.Register(ctx, auth.RegisterInput{Username: username, Password: DemoPassword})
	if err == nil {
		return user, true, nil
	}
	if !apperr.HasCode(err, apperr.CodeDuplicate) {
		return nil, false, fmt.Errorf("seed: register %s: %w", username, err)
	}

	user, err = deps.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("seed: find %s: %w", username, err)
	}
	return user, false, nil
}
