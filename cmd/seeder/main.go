package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/config"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
	"github.com/whereaboutapp/api-whereabout/internal/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Firebase app: %v", err)
	}
	fsClient, err := fbApp.Firestore(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()
	log.Println("✅ Connected to Firestore")

	userRepo := repository.NewUserRepository(fsClient)
	relationRepo := repository.NewRelationRepository(fsClient)
	locationRepo := repository.NewLocationRepository(fsClient)
	eventRepo := repository.NewEventRepository(fsClient)

	friendService := service.NewFriendService(relationRepo)

	// Create 5 demo users
	log.Println("🌱 Seeding 5 users...")
	userIDs := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		uid := fmt.Sprintf("demo-user-%d", i)
		userIDs = append(userIDs, uid)

		if _, err := userRepo.FindByID(ctx, uid); err == nil {
			log.Printf("🔄 User %s already exists, skipping", uid)
			continue
		} else if !errors.Is(err, apperr.ErrNotFound) {
			log.Fatalf("❌ Failed to check user %s: %v", uid, err)
		}

		now := time.Now().Unix()
		user := &model.User{
			UserID:    uid,
			Email:     fmt.Sprintf("user%d@whereabout.local", i),
			FirstName: fmt.Sprintf("Demo%d", i),
			LastName:  "User",
			AvatarURL: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=demo-user-%d", i),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("❌ Failed to create user %s: %v", uid, err)
		} else {
			log.Printf("✅ Created user: %s | Email: %s", uid, user.Email)
		}
	}

	// Make user 1 friends with everyone else
	log.Println("🌱 Seeding friendships...")
	for _, friendID := range userIDs[1:] {
		if _, _, err := friendService.CreateFriend(ctx, userIDs[0], friendID); err != nil {
			log.Printf("❌ Failed to befriend %s and %s: %v", userIDs[0], friendID, err)
		} else {
			log.Printf("✅ %s ⇄ %s are now friends", userIDs[0], friendID)
		}
	}

	// A location and a check-in per friend
	log.Println("🌱 Seeding locations and check-ins...")
	tags := []string{"Home", "Office", "Gym", "Cafe"}
	for i, friendID := range userIDs[1:] {
		now := time.Now().Unix()
		location := &model.Location{
			UserID:    friendID,
			Latitude:  52.37 + float64(i)*0.01,
			Longitude: 4.89 + float64(i)*0.01,
			Width:     120,
			Height:    120,
			Tag:       tags[i%len(tags)],
			Category:  "default",
			CreatedAt: now,
			UpdatedAt: now,
		}
		location, err := locationRepo.Create(ctx, location)
		if err != nil {
			log.Printf("❌ Failed to create location for %s: %v", friendID, err)
			continue
		}

		event := &model.Event{
			UserID:     friendID,
			LocationID: location.LocationID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := eventRepo.Create(ctx, event); err != nil {
			log.Printf("❌ Failed to create event for %s: %v", friendID, err)
		} else {
			log.Printf("✅ %s checked in at %s", friendID, location.Tag)
		}
	}

	log.Println("🎉 Seeding completed!")
}
