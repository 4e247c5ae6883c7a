package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/whereaboutapp/api-whereabout/internal/middleware"
	"github.com/whereaboutapp/api-whereabout/internal/model"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
	"github.com/whereaboutapp/api-whereabout/internal/service"
	"github.com/whereaboutapp/api-whereabout/pkg/auth"
)

// HandlerSuite drives the public API over httptest with in-memory
// repositories and the local JWT verifier.
type HandlerSuite struct {
	suite.Suite
	router    *gin.Engine
	verifier  *auth.JWTVerifier
	users     *repository.MemoryUserRepository
	relations *repository.MemoryRelationRepository
	locations *repository.MemoryLocationRepository
	events    *repository.MemoryEventRepository
}

func (s *HandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.verifier = auth.NewJWTVerifier("test-secret")
	s.users = repository.NewMemoryUserRepository()
	s.relations = repository.NewMemoryRelationRepository()
	s.locations = repository.NewMemoryLocationRepository()
	s.events = repository.NewMemoryEventRepository()

	userService := service.NewUserService(s.users)
	friendService := service.NewFriendService(s.relations)
	locationService := service.NewLocationService(s.locations)
	eventService := service.NewEventService(s.events, s.locations)
	feedService := service.NewFeedService(s.relations, s.users, s.events, s.locations)

	userHandler := NewUserHandler(userService, nil, nil)
	friendHandler := NewFriendHandler(friendService, userService, nil, nil)
	locationHandler := NewLocationHandler(locationService)
	eventHandler := NewEventHandler(eventService, friendService, userService, nil, nil)
	feedHandler := NewFeedHandler(feedService)
	adminHandler := NewAdminHandler(s.users, s.relations, s.locations, s.events)

	router := gin.New()
	router.GET("/", Root)
	router.GET("/health", Health)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(s.verifier, nil))
	{
		api.GET("/feed", feedHandler.FetchFeed)
		api.POST("/users/create", userHandler.CreateUser)
		api.GET("/users/:id", userHandler.FetchUser)
		api.POST("/users/:id/token", userHandler.UpdateToken)
		api.POST("/friends/create", friendHandler.CreateFriend)
		api.POST("/friends/:id/delete", friendHandler.Unfriend)
		api.GET("/locations", locationHandler.ListLocations)
		api.POST("/locations/create", locationHandler.CreateLocation)
		api.GET("/locations/:id", locationHandler.FetchLocation)
		api.POST("/locations/:id/edit", locationHandler.EditLocation)
		api.POST("/locations/:id/delete", locationHandler.DeleteLocation)
		api.POST("/events/create", eventHandler.CreateEvent)
		api.GET("/events/:id", eventHandler.FetchEvent)
		api.POST("/events/:id/delete", eventHandler.DeleteEvent)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth("admin", "secret"))
	admin.GET("/stats", adminHandler.Stats)

	s.router = router
}

func (s *HandlerSuite) SetupSubTest() {
	s.SetupTest()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) token(uid string) string {
	token, err := s.verifier.GenerateToken(uid, uid+"@example.com", uid, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) do(method, path, uid string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(uid))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) createUser(uid string) model.User {
	rec := s.do(http.MethodPost, "/api/users/create", uid, model.CreateUserRequest{
		Email:     uid + "@example.com",
		FirstName: uid,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var user model.User
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (s *HandlerSuite) TestPublicEndpoints() {
	s.Run("root banner", func() {
		rec := s.do(http.MethodGet, "/", "", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("health", func() {
		rec := s.do(http.MethodGet, "/health", "", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "healthy")
	})

	s.Run("api requires a token", func() {
		rec := s.do(http.MethodGet, "/api/feed", "", nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestUserEndpoints() {
	s.Run("create then fetch", func() {
		created := s.createUser("alice")
		s.Equal("alice", created.UserID)

		rec := s.do(http.MethodGet, "/api/users/alice", "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "alice@example.com")
	})

	s.Run("duplicate create fails", func() {
		s.createUser("bob")
		rec := s.do(http.MethodPost, "/api/users/create", "bob", model.CreateUserRequest{Email: "bob@example.com"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("fetch resolves the caller, not the path id", func() {
		s.createUser("alice")
		rec := s.do(http.MethodGet, "/api/users/someone-else", "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "alice@example.com")
	})

	s.Run("fetch fails for an unregistered caller", func() {
		rec := s.do(http.MethodGet, "/api/users/ghost", "ghost", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("token update always targets the caller", func() {
		s.createUser("carol")
		rec := s.do(http.MethodPost, "/api/users/carol/token", "carol", model.UpdateUserTokenRequest{Token: "t-1"})
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "t-1")

		// An unregistered caller cannot update anyone, whatever the path says
		rec = s.do(http.MethodPost, "/api/users/carol/token", "mallory", model.UpdateUserTokenRequest{Token: "evil"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestFriendEndpoints() {
	s.Run("create returns both directions", func() {
		s.createUser("alice")
		s.createUser("bob")

		rec := s.do(http.MethodPost, "/api/friends/create", "alice", model.CreateRelationRequest{RecipientID: "bob"})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var pair model.RelationPairResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &pair))
		s.Equal("alice", pair.Relation.UserID)
		s.Equal("bob", pair.Relation.RecipientID)
		s.Equal("bob", pair.Inverse.UserID)
		s.Equal("alice", pair.Inverse.RecipientID)
	})

	s.Run("missing recipient is a binding error", func() {
		rec := s.do(http.MethodPost, "/api/friends/create", "alice", map[string]string{})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("self-friend is rejected", func() {
		rec := s.do(http.MethodPost, "/api/friends/create", "alice", model.CreateRelationRequest{RecipientID: "alice"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unfriend returns true and is repeatable", func() {
		s.createUser("alice")
		s.createUser("bob")
		s.do(http.MethodPost, "/api/friends/create", "alice", model.CreateRelationRequest{RecipientID: "bob"})

		rec := s.do(http.MethodPost, "/api/friends/bob/delete", "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal("true", rec.Body.String())

		rec = s.do(http.MethodPost, "/api/friends/bob/delete", "alice", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestLocationEndpoints() {
	locationBody := model.CreateLocationRequest{
		Latitude: 52.37, Longitude: 4.89,
		Width: 100, Height: 100,
		Tag: "Home",
	}

	s.Run("create, list, edit, delete", func() {
		rec := s.do(http.MethodPost, "/api/locations/create", "alice", locationBody)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var location model.Location
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &location))
		s.NotEmpty(location.LocationID)

		rec = s.do(http.MethodGet, "/api/locations", "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), location.LocationID)

		edit := model.EditLocationRequest{Latitude: 1, Longitude: 2, Width: 50, Height: 50, Tag: "Work"}
		rec = s.do(http.MethodPost, "/api/locations/"+location.LocationID+"/edit", "alice", edit)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Work")

		rec = s.do(http.MethodPost, "/api/locations/"+location.LocationID+"/delete", "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal("true", rec.Body.String())

		rec = s.do(http.MethodGet, "/api/locations/"+location.LocationID, "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal("null", rec.Body.String())
	})

	s.Run("invalid geofence is rejected", func() {
		bad := locationBody
		bad.Width = 0
		rec := s.do(http.MethodPost, "/api/locations/create", "alice", bad)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestEventEndpoints() {
	s.Run("check-in requires an existing location", func() {
		rec := s.do(http.MethodPost, "/api/events/create", "alice", model.CreateEventRequest{LocationID: "nope"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("check-in round trip", func() {
		s.createUser("alice")
		locRec := s.do(http.MethodPost, "/api/locations/create", "alice", model.CreateLocationRequest{
			Latitude: 1, Longitude: 2, Width: 10, Height: 10, Tag: "Gym",
		})
		s.Require().Equal(http.StatusOK, locRec.Code)
		var location model.Location
		s.Require().NoError(json.Unmarshal(locRec.Body.Bytes(), &location))

		rec := s.do(http.MethodPost, "/api/events/create", "alice", model.CreateEventRequest{LocationID: location.LocationID})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var event model.Event
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &event))
		s.Equal("alice", event.UserID)

		rec = s.do(http.MethodGet, "/api/events/"+event.EventID, "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), event.EventID)

		rec = s.do(http.MethodPost, "/api/events/"+event.EventID+"/delete", "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal("true", rec.Body.String())

		rec = s.do(http.MethodGet, "/api/events/"+event.EventID, "alice", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal("null", rec.Body.String())
	})
}

func (s *HandlerSuite) TestFeedEndpoint() {
	s.createUser("me")
	s.createUser("friend")
	s.do(http.MethodPost, "/api/friends/create", "me", model.CreateRelationRequest{RecipientID: "friend"})

	locRec := s.do(http.MethodPost, "/api/locations/create", "friend", model.CreateLocationRequest{
		Latitude: 1, Longitude: 2, Width: 10, Height: 10, Tag: "Cafe",
	})
	s.Require().Equal(http.StatusOK, locRec.Code)
	var location model.Location
	s.Require().NoError(json.Unmarshal(locRec.Body.Bytes(), &location))

	rec := s.do(http.MethodPost, "/api/events/create", "friend", model.CreateEventRequest{LocationID: location.LocationID})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/feed?page=0&limit=10", "me", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var feed []model.FeedItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &feed))
	s.Require().Len(feed, 1)
	s.Equal("friend", feed[0].User.UserID)
	s.Equal("Cafe", feed[0].Location.Tag)
}

func (s *HandlerSuite) TestAdminStats() {
	s.createUser("alice")
	s.createUser("bob")
	s.do(http.MethodPost, "/api/friends/create", "alice", model.CreateRelationRequest{RecipientID: "bob"})

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var stats model.StatsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stats))
	s.EqualValues(2, stats.Users)
	s.EqualValues(2, stats.Relations)
}
