package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/teetrip/teetrip/internal/adapters/http/api"
	"github.com/teetrip/teetrip/internal/app"
	"github.com/teetrip/teetrip/internal/domain/types"
	"github.com/teetrip/teetrip/pkg/logger"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	_ = logger.Init()
	svc := app.New(app.WithLogger(logger.Get()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func doGet(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func doPost(mux *http.ServeMux, target string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload)))
	return rec
}

func TestTeeTimesEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		Convey("When course and date are supplied", func() {
			rec := doGet(mux, "/teetimes?courseId=pebble&date=2026-06-20&rating=4.5")

			Convey("Then a schedule comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var av types.Availability
				So(json.Unmarshal(rec.Body.Bytes(), &av), ShouldBeNil)
				if av.Available {
					So(av.Slots, ShouldNotBeEmpty)
				}
			})

			Convey("Then repeating the query returns the identical body", func() {
				again := doGet(mux, "/teetimes?courseId=pebble&date=2026-06-20&rating=4.5")
				So(again.Code, ShouldEqual, http.StatusOK)
				So(again.Body.String(), ShouldEqual, rec.Body.String())
			})
		})

		Convey("When the course id is missing", func() {
			rec := doGet(mux, "/teetimes?date=2026-06-20")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the date is malformed", func() {
			rec := doGet(mux, "/teetimes?courseId=pebble&date=June+20")

			Convey("Then the error names the invalid date", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "invalid_date")
			})
		})

		Convey("When the rating is out of range", func() {
			rec := doGet(mux, "/teetimes?courseId=pebble&date=2026-06-20&rating=9")

			Convey("Then the error names the invalid rating", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "invalid_rating")
			})
		})

		Convey("When the method is POST", func() {
			rec := doPost(mux, "/teetimes", map[string]string{})

			Convey("Then the route does not exist", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestBatchEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		Convey("When a batch of courses is posted", func() {
			ids := make([]string, 12)
			for i := range ids {
				ids[i] = fmt.Sprintf("course-%d", i)
			}
			rec := doPost(mux, "/teetimes/batch", map[string]any{
				"courseIds": ids,
				"date":      "2026-06-20",
				"rating":    4.0,
			})

			Convey("Then per-course results come back in order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []app.BatchResult `json:"results"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Results, ShouldHaveLength, 12)
				for i, res := range resp.Results {
					So(res.CourseID, ShouldEqual, ids[i])
				}
			})
		})

		Convey("When per-course ratings override the shared one", func() {
			rec := doPost(mux, "/teetimes/batch", map[string]any{
				"courseIds": []string{"override-me", "plain"},
				"date":      "2026-06-20",
				"rating":    3.0,
				"ratings":   map[string]float64{"override-me": 4.8},
			})
			direct := doGet(mux, "/teetimes?courseId=override-me&date=2026-06-20&rating=4.8")

			Convey("Then the overridden course matches its direct query", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(direct.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []app.BatchResult `json:"results"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				var av types.Availability
				So(json.Unmarshal(direct.Body.Bytes(), &av), ShouldBeNil)
				So(resp.Results[0].Availability, ShouldResemble, av)
			})
		})

		Convey("When the course list is empty", func() {
			rec := doPost(mux, "/teetimes/batch", map[string]any{
				"courseIds": []string{},
				"date":      "2026-06-20",
			})

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "missing courseIds")
			})
		})

		Convey("When the body is not JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/teetimes/batch", bytes.NewReader([]byte("not json"))))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRecommendEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		courses := make([]map[string]any, 0, 30)
		for i := 0; i < 30; i++ {
			courses = append(courses, map[string]any{
				"id":     fmt.Sprintf("rec-course-%d", i),
				"name":   fmt.Sprintf("Course %d", i),
				"lat":    40.0 + float64(i)*0.01,
				"lng":    -105.0,
				"rating": 4.0,
			})
		}

		Convey("When a group asks for recommendations", func() {
			rec := doPost(mux, "/recommend", map[string]any{
				"courses":     courses,
				"date":        "2026-06-20",
				"players":     []map[string]float64{{"lat": 40.0, "lng": -105.0}},
				"playerCount": 2,
			})

			Convey("Then at most five scored courses come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Recommendations []types.ScoredCandidate `json:"recommendations"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(len(resp.Recommendations), ShouldBeLessThanOrEqualTo, 5)
				for i := 1; i < len(resp.Recommendations); i++ {
					So(resp.Recommendations[i].Score, ShouldBeLessThanOrEqualTo, resp.Recommendations[i-1].Score)
				}
			})
		})

		Convey("When the player list is too large", func() {
			players := make([]map[string]float64, 5)
			for i := range players {
				players[i] = map[string]float64{"lat": 40, "lng": -105}
			}
			rec := doPost(mux, "/recommend", map[string]any{
				"courses": courses,
				"date":    "2026-06-20",
				"players": players,
			})

			Convey("Then the error names the player set", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "invalid_player_set")
			})
		})

		Convey("When the player list is missing", func() {
			rec := doPost(mux, "/recommend", map[string]any{
				"courses": courses,
				"date":    "2026-06-20",
			})

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "missing players")
			})
		})
	})
}

func TestCollaboratorEndpoints(t *testing.T) {
	Convey("Given routes backed by a service with no upstream clients", t, func() {
		mux := newTestMux(t)

		Convey("When courses are requested", func() {
			rec := doGet(mux, "/courses?lat=40&lng=-105")

			Convey("Then the endpoint reports itself disabled", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring, "places_disabled")
			})
		})

		Convey("When coordinates are malformed", func() {
			rec := doGet(mux, "/courses?lat=north&lng=-105")

			Convey("Then the request is rejected before any lookup", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When geocoding is requested", func() {
			rec := doGet(mux, "/geocode?q=Boulder,+CO")

			Convey("Then the endpoint reports itself disabled", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring, "geocode_disabled")
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		Convey("When stats are requested", func() {
			rec := doGet(mux, "/stats")

			Convey("Then the service state is visible", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldBeTrue)
			})
		})

		Convey("When health is scraped", func() {
			rec := doGet(mux, "/healthz")

			Convey("Then the Prometheus exposition answers", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When no request id is supplied", func() {
			rec := doGet(mux, "/stats")

			Convey("Then one is generated", func() {
				So(rec.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
			})
		})

		Convey("When a request id is supplied", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			req.Header.Set("X-Request-Id", "trace-me")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is echoed back", func() {
				So(rec.Header().Get("X-Request-Id"), ShouldEqual, "trace-me")
			})
		})
	})
}
