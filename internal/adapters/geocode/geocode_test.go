package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/teetrip/teetrip/internal/adapters/geocode"
)

func stubNominatim(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Forward(t *testing.T) {
	Convey("Given a geocode client against a stub upstream", t, func() {
		ctx := context.Background()

		Convey("When the address resolves", func() {
			srv := stubNominatim(t, `[{"lat": "40.0149856", "lon": "-105.2705456", "display_name": "Boulder, Colorado, United States"}]`)
			client := geocode.NewClient(geocode.WithBaseURL(srv.URL))
			loc, err := client.Forward(ctx, "Boulder, CO")

			Convey("Then the string coordinates are parsed", func() {
				So(err, ShouldBeNil)
				So(loc.Lat, ShouldAlmostEqual, 40.0149856, 1e-9)
				So(loc.Lng, ShouldAlmostEqual, -105.2705456, 1e-9)
				So(loc.Display, ShouldEqual, "Boulder, Colorado, United States")
			})
		})

		Convey("When the query is too short", func() {
			client := geocode.NewClient()
			_, err := client.Forward(ctx, "  ab ")

			Convey("Then the lookup fails before any request", func() {
				So(err, ShouldWrap, geocode.ErrQueryTooShort)
			})
		})

		Convey("When nothing matches", func() {
			srv := stubNominatim(t, `[]`)
			client := geocode.NewClient(geocode.WithBaseURL(srv.URL))
			_, err := client.Forward(ctx, "nowhere at all")

			Convey("Then not-found is reported", func() {
				So(err, ShouldWrap, geocode.ErrNotFound)
			})
		})

		Convey("When the coordinates are garbage", func() {
			srv := stubNominatim(t, `[{"lat": "north", "lon": "west", "display_name": "x"}]`)
			client := geocode.NewClient(geocode.WithBaseURL(srv.URL))
			_, err := client.Forward(ctx, "somewhere odd")

			Convey("Then a lookup error is reported", func() {
				So(err, ShouldWrap, geocode.ErrLookup)
			})
		})
	})
}
