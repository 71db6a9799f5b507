package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/ghostboard/internal/adapters/http/api"
	service "github.com/okian/ghostboard/internal/app"
	"github.com/okian/ghostboard/internal/domain/types"
	"github.com/okian/ghostboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// Mock implementations for testing
type mockDeps struct {
	board     types.Board
	boardErr  error
	rank      types.Entry
	rankErr   error
	ghosts    []types.Ghost
	lastUser  string
	lastLimit int
	lastPack  int
}

func (m *mockDeps) Board(_ context.Context, userID string, limit int) (types.Board, error) {
	m.lastUser, m.lastLimit = userID, limit
	if m.boardErr != nil {
		return types.Board{}, m.boardErr
	}
	return m.board, nil
}

func (m *mockDeps) Rank(_ context.Context, userID string) (types.Entry, error) {
	m.lastUser = userID
	if m.rankErr != nil {
		return types.Entry{}, m.rankErr
	}
	return m.rank, nil
}

func (m *mockDeps) Cohort(_ context.Context, packID int) ([]types.Ghost, string) {
	m.lastPack = packID
	return m.ghosts, "2024-W04-P10"
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func serve(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func newMux(deps *mockDeps, opts ...api.ServerOption) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, opts...).Register(context.Background(), mux)
	return mux
}

func TestServer_Routes(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{
			board: types.Board{SeedKey: "2024-W04-P10", PackID: 10, Total: 2, UserRank: 2, Entries: []types.Entry{
				{Rank: 1, Name: "Rahul Sharma", Score: 120, IsBot: true},
				{Rank: 2, Name: "Guest", IsUser: true},
			}},
			rank:   types.Entry{Rank: 7, Name: "Meena", IsUser: true},
			ghosts: []types.Ghost{{Name: "Rahul Sharma", Initials: "RS", Skill: 70, Pace: 40}},
		}
		mux := newMux(deps, api.WithMaxLimit(50))

		Convey("When calling /healthz", func() {
			w := serve(mux, http.MethodGet, "/healthz")

			Convey("Then it reports ok with a request id", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeBlank)
			})
		})

		Convey("When the caller sends a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is echoed back", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When calling /metrics", func() {
			_ = serve(mux, http.MethodGet, "/healthz")
			w := serve(mux, http.MethodGet, "/metrics")

			Convey("Then Prometheus text is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "ghostboard_http_requests_total")
			})
		})

		Convey("When calling /stats", func() {
			w := serve(mux, http.MethodGet, "/stats")

			Convey("Then the provider's stats are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"started":true`)
			})
		})

		Convey("When calling /leaderboard with a user and limit", func() {
			w := serve(mux, http.MethodGet, "/leaderboard?user_id=42&limit=10")

			Convey("Then the board is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastUser, ShouldEqual, "42")
				So(deps.lastLimit, ShouldEqual, 10)
				var b types.Board
				So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
				So(b.SeedKey, ShouldEqual, "2024-W04-P10")
				So(len(b.Entries), ShouldEqual, 2)
				So(b.UserRank, ShouldEqual, 2)
			})
		})

		Convey("When calling /leaderboard without parameters", func() {
			w := serve(mux, http.MethodGet, "/leaderboard")

			Convey("Then a guest board with every row is requested", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastUser, ShouldEqual, "")
				So(deps.lastLimit, ShouldEqual, 0)
			})
		})

		Convey("When calling /leaderboard with bad limits", func() {
			Convey("Then non-numeric and negative limits are rejected", func() {
				So(serve(mux, http.MethodGet, "/leaderboard?limit=abc").Code, ShouldEqual, http.StatusBadRequest)
				So(serve(mux, http.MethodGet, "/leaderboard?limit=-1").Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("Then limits above the cap are rejected", func() {
				w := serve(mux, http.MethodGet, "/leaderboard?limit=51")
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})

		Convey("When the service fails", func() {
			deps.boardErr = errors.New("boom")
			w := serve(mux, http.MethodGet, "/leaderboard")

			Convey("Then a 500 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "internal_error")
			})
		})

		Convey("When the service is not started", func() {
			deps.boardErr = service.ErrNotStarted
			w := serve(mux, http.MethodGet, "/leaderboard")

			Convey("Then a 503 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When calling /rank/{user_id}", func() {
			w := serve(mux, http.MethodGet, "/rank/42")

			Convey("Then the user's entry is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastUser, ShouldEqual, "42")
				So(w.Body.String(), ShouldContainSubstring, `"rank":7`)
			})
		})

		Convey("When calling /rank with a bad path", func() {
			Convey("Then it is a bad request", func() {
				So(serve(mux, http.MethodGet, "/rank/").Code, ShouldEqual, http.StatusBadRequest)
				So(serve(mux, http.MethodGet, "/rank/a/b").Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the rank lookup misses", func() {
			deps.rankErr = service.ErrUserNotFound
			w := serve(mux, http.MethodGet, "/rank/42")

			Convey("Then a 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When calling /cohort", func() {
			w := serve(mux, http.MethodGet, "/cohort?pack_id=12")

			Convey("Then the ghosts and seed key are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastPack, ShouldEqual, 12)
				So(w.Body.String(), ShouldContainSubstring, `"seed_key":"2024-W04-P10"`)
				So(w.Body.String(), ShouldContainSubstring, `"avg_pace":40`)
			})

			Convey("Then a bad pack id is rejected", func() {
				So(serve(mux, http.MethodGet, "/cohort?pack_id=x").Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			Convey("Then it is not found", func() {
				So(serve(mux, http.MethodPost, "/leaderboard").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When calling an unknown path", func() {
			w := serve(mux, http.MethodGet, "/nope")

			Convey("Then a JSON 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "not_found")
			})
		})
	})
}

func TestServer_RateLimit(t *testing.T) {
	Convey("Given a server allowing a burst of two", t, func() {
		mux := newMux(&mockDeps{}, api.WithRateLimit(0.001, 2))

		Convey("When one client sends three requests", func() {
			codes := []int{}
			for i := 0; i < 3; i++ {
				codes = append(codes, serve(mux, http.MethodGet, "/healthz").Code)
			}

			Convey("Then the third is rejected", func() {
				So(codes, ShouldResemble, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests})
			})

			Convey("Then the rejection shows up in the request counter", func() {
				req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
				req.RemoteAddr = "10.0.0.7:4444"
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring,
					`ghostboard_http_requests_total{endpoint="healthz",method="GET",status="429"}`)
			})
		})

		Convey("When another client arrives", func() {
			for i := 0; i < 3; i++ {
				_ = serve(mux, http.MethodGet, "/healthz")
			}
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.RemoteAddr = "10.0.0.9:5555"
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it has its own bucket", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestServer_WithService(t *testing.T) {
	Convey("Given the API backed by a real service", t, func() {
		loc := time.FixedZone("IST", 5*3600+1800)
		svc := service.New(
			service.WithLocation(loc),
			service.WithClock(func() time.Time { return time.Date(2024, time.January, 24, 16, 20, 0, 0, loc) }),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		Reset(svc.Stop)

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)

		Convey("When a guest asks for the top five", func() {
			w := serve(mux, http.MethodGet, "/leaderboard?limit=5")

			Convey("Then five ranked rows of a fifty-strong board come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var b types.Board
				So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
				So(b.SeedKey, ShouldEqual, "2024-W04-P10")
				So(b.Total, ShouldEqual, 50)
				So(len(b.Entries), ShouldEqual, 5)
				for i, e := range b.Entries {
					So(e.Rank, ShouldEqual, i+1)
					So(e.Score%10, ShouldEqual, 0)
				}
			})

			Convey("Then the guest's analytics and subscription are included", func() {
				var b types.Board
				So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
				So(b.SubscriptionStatus, ShouldEqual, "free")
				So(b.Analytics.PotentialScore, ShouldEqual, 270)
				So(b.Analytics.PointsLost, ShouldEqual, 270)
				So(b.Analytics.QuestionsGoal, ShouldEqual, 60)
				So(w.Body.String(), ShouldNotContainSubstring, `"skill"`)
			})
		})

		Convey("When a guest asks for their rank", func() {
			w := serve(mux, http.MethodGet, "/rank/guest-1")

			Convey("Then the user row is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"is_user":true`)
			})
		})
	})
}
