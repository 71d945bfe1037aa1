package recommend_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	recommend "github.com/teetrip/teetrip/internal/domain/recommend"
	"github.com/teetrip/teetrip/internal/domain/types"
)

func slot(t string, price, capacity int) types.TimeSlot {
	return types.TimeSlot{Time: t, Price: price, Capacity: capacity, Holes: 18}
}

func candidate(id string, lat, lng, rating float64, slots ...types.TimeSlot) recommend.Candidate {
	return recommend.Candidate{
		Course: types.CourseCandidate{
			ID: id, Name: "Course " + id, Lat: lat, Lng: lng, Rating: rating,
		},
		Availability: types.Availability{Available: true, Slots: slots},
	}
}

func TestScorer_Validation(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := recommend.NewScorer()
		ctx := context.Background()
		c := candidate("a", 40, -105, 4, slot("08:00", 60, 4))

		Convey("When the player set is empty", func() {
			_, err := scorer.Rank(ctx, []recommend.Candidate{c}, nil, 2, nil)

			Convey("Then it rejects with ErrInvalidPlayerSet", func() {
				So(err, ShouldWrap, recommend.ErrInvalidPlayerSet)
			})
		})

		Convey("When the player set exceeds four locations", func() {
			players := make([]types.LatLng, 5)
			_, err := scorer.Rank(ctx, []recommend.Candidate{c}, players, 5, nil)

			Convey("Then it rejects with ErrInvalidPlayerSet", func() {
				So(err, ShouldWrap, recommend.ErrInvalidPlayerSet)
			})
		})
	})
}

func TestScorer_Filtering(t *testing.T) {
	Convey("Given candidates with mixed availability", t, func() {
		scorer := recommend.NewScorer()
		ctx := context.Background()
		players := []types.LatLng{{Lat: 40, Lng: -105}}

		unavailable := recommend.Candidate{
			Course:       types.CourseCandidate{ID: "closed", Lat: 40, Lng: -105, Rating: 5},
			Availability: types.Availability{Available: false, Slots: []types.TimeSlot{}},
		}
		emptyDay := recommend.Candidate{
			Course:       types.CourseCandidate{ID: "empty", Lat: 40, Lng: -105, Rating: 5},
			Availability: types.Availability{Available: true, Slots: []types.TimeSlot{}},
		}
		open := candidate("open", 40, -105, 4, slot("09:00", 70, 4))

		Convey("When ranking", func() {
			got, err := scorer.Rank(ctx, []recommend.Candidate{unavailable, emptyDay, open}, players, 1, nil)

			Convey("Then only courses with bookable slots survive", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].ID, ShouldEqual, "open")
			})
		})

		Convey("When no candidate passes the filter", func() {
			got, err := scorer.Rank(ctx, []recommend.Candidate{unavailable, emptyDay}, players, 1, nil)

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})
	})
}

func TestScorer_RankingBoundAndStability(t *testing.T) {
	Convey("Given eight indistinguishable candidates", t, func() {
		scorer := recommend.NewScorer()
		ctx := context.Background()
		players := []types.LatLng{{Lat: 40, Lng: -105}}

		var candidates []recommend.Candidate
		for i := 0; i < 8; i++ {
			candidates = append(candidates, candidate(fmt.Sprintf("tie-%d", i), 40.05, -105, 4, slot("10:00", 65, 4)))
		}

		Convey("When ranking", func() {
			got, err := scorer.Rank(ctx, candidates, players, 1, nil)

			Convey("Then at most five come back, in input order", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 5)
				for i, sc := range got {
					So(sc.ID, ShouldEqual, fmt.Sprintf("tie-%d", i))
				}
			})
		})
	})
}

func TestScorer_Scoring(t *testing.T) {
	Convey("Given candidates differing on a single signal", t, func() {
		scorer := recommend.NewScorer()
		ctx := context.Background()
		players := []types.LatLng{{Lat: 40, Lng: -105}}

		Convey("When one course is much closer", func() {
			near := candidate("near", 40.02, -105, 4, slot("10:00", 65, 4))
			far := candidate("far", 41.5, -105, 4, slot("10:00", 65, 4))
			got, err := scorer.Rank(ctx, []recommend.Candidate{far, near}, players, 1, nil)

			Convey("Then the closer course ranks first", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].ID, ShouldEqual, "near")
			})
		})

		Convey("When one course has more slots that seat the group", func() {
			roomy := candidate("roomy", 40.05, -105, 4,
				slot("08:00", 60, 4), slot("09:00", 60, 4), slot("10:00", 60, 4))
			tight := candidate("tight", 40.05, -105, 4,
				slot("08:00", 60, 4), slot("09:00", 60, 1), slot("10:00", 60, 1))
			got, err := scorer.Rank(ctx, []recommend.Candidate{tight, roomy}, players, 4, nil)

			Convey("Then the roomier course ranks first and only fitting slots remain", func() {
				So(err, ShouldBeNil)
				So(got[0].ID, ShouldEqual, "roomy")
				So(got[0].FittingSlots, ShouldHaveLength, 3)
				So(got[1].FittingSlots, ShouldHaveLength, 1)
			})
		})

		Convey("When a price filter is supplied", func() {
			onBudget := candidate("on-budget", 40.05, -105, 4, slot("10:00", 60, 4))
			pricey := candidate("pricey", 40.05, -105, 4, slot("10:00", 140, 4))
			filter := &types.PriceFilter{Min: 40, Max: 80}
			got, err := scorer.Rank(ctx, []recommend.Candidate{pricey, onBudget}, players, 1, filter)

			Convey("Then the course near the budget midpoint ranks first", func() {
				So(err, ShouldBeNil)
				So(got[0].ID, ShouldEqual, "on-budget")
			})
		})

		Convey("When a course has no rating", func() {
			unrated := candidate("unrated", 40.05, -105, 0, slot("10:00", 60, 4))
			got, err := scorer.Rank(ctx, []recommend.Candidate{unrated}, players, 1, nil)

			Convey("Then it scores as a middling three-star course", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Score, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestScorer_Explanations(t *testing.T) {
	Convey("Given a single-player query", t, func() {
		scorer := recommend.NewScorer()
		ctx := context.Background()
		players := []types.LatLng{{Lat: 40, Lng: -105}}

		Convey("When a 4.2-star course sits about eight miles out with fitting slots", func() {
			// 0.116 degrees of latitude is roughly 12.9 km / 8 miles.
			c := candidate("nearby", 40.116, -105, 4.2, slot("07:32", 55, 3))
			got, err := scorer.Rank(ctx, []recommend.Candidate{c}, players, 1, nil)

			Convey("Then the explanation mentions proximity, the slot, and the rating", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].MaxDistance, ShouldAlmostEqual, 8.0, 0.2)
				So(got[0].Explanation, ShouldContainSubstring, "Close to all players")
				So(got[0].Explanation, ShouldContainSubstring, "7:32 AM has 3 slots")
				So(got[0].Explanation, ShouldContainSubstring, "4.2 stars")
			})
		})

		Convey("When the course is a longer but tolerable drive", func() {
			// About 0.3 degrees of latitude: roughly 33 km / 20 miles.
			c := candidate("drive", 40.3, -105, 3.2, slot("13:00", 45, 2))
			got, err := scorer.Rank(ctx, []recommend.Candidate{c}, players, 1, nil)

			Convey("Then the drive verdict softens and no rating is mentioned", func() {
				So(err, ShouldBeNil)
				So(got[0].Explanation, ShouldContainSubstring, "Reasonable drive for everyone")
				So(got[0].Explanation, ShouldContainSubstring, "1:00 PM has 2 slots")
				So(got[0].Explanation, ShouldNotContainSubstring, "stars")
			})
		})

		Convey("When nothing is worth calling out", func() {
			// Far away, low rated, and no slot seats the full group.
			c := candidate("meh", 41.0, -105, 3.0, slot("10:00", 50, 1))
			got, err := scorer.Rank(ctx, []recommend.Candidate{c}, players, 4, nil)

			Convey("Then the fallback line is used", func() {
				So(err, ShouldBeNil)
				So(got[0].Explanation, ShouldEqual, "Good match for your group")
			})
		})
	})
}
