package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/ghostboard/internal/adapters/repository"
	"github.com/okian/ghostboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func profile(id string, score int) model.Profile {
	return model.Profile{UserID: id, FullName: "User " + id, PackID: 10, TotalScore: score}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new MemoryStore", t, func() {
		s := repository.NewMemoryStore()

		Convey("When reading an unknown user", func() {
			_, err := s.Get(ctx, "nobody")

			Convey("Then it should return ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When storing a profile", func() {
			So(s.Put(ctx, profile("u1", 120)), ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := s.Get(ctx, "u1")
				So(err, ShouldBeNil)
				So(got.TotalScore, ShouldEqual, 120)
				So(s.Count(ctx), ShouldEqual, 1)
			})

			Convey("And storing it again replaces it", func() {
				So(s.Put(ctx, profile("u1", 300)), ShouldBeNil)
				got, _ := s.Get(ctx, "u1")
				So(got.TotalScore, ShouldEqual, 300)
				So(s.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When storing a profile without a user id", func() {
			err := s.Put(ctx, model.Profile{})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, repository.ErrInvalidKey), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded MemoryStore", t, func() {
		s := repository.NewMemoryStore(repository.WithMaxSize(3))
		for i := 1; i <= 3; i++ {
			So(s.Put(ctx, profile(fmt.Sprintf("u%d", i), i)), ShouldBeNil)
		}

		Convey("When a fourth profile arrives", func() {
			So(s.Put(ctx, profile("u4", 4)), ShouldBeNil)

			Convey("Then the oldest is evicted", func() {
				So(s.Count(ctx), ShouldEqual, 3)
				_, err := s.Get(ctx, "u1")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, err = s.Get(ctx, "u4")
				So(err, ShouldBeNil)
			})
		})

		Convey("When the oldest is refreshed before the fourth arrives", func() {
			So(s.Put(ctx, profile("u1", 10)), ShouldBeNil)
			So(s.Put(ctx, profile("u4", 4)), ShouldBeNil)

			Convey("Then the next oldest goes instead", func() {
				_, err := s.Get(ctx, "u1")
				So(err, ShouldBeNil)
				_, err = s.Get(ctx, "u2")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a MemoryStore with a TTL and a fake clock", t, func() {
		now := time.Date(2024, time.January, 24, 12, 0, 0, 0, time.UTC)
		s := repository.NewMemoryStore(
			repository.WithTTL(time.Minute),
			repository.WithClock(func() time.Time { return now }),
		)
		So(s.Put(ctx, profile("u1", 50)), ShouldBeNil)

		Convey("When read before expiry", func() {
			now = now.Add(59 * time.Second)
			_, err := s.Get(ctx, "u1")

			Convey("Then the profile is returned", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When read after expiry", func() {
			now = now.Add(time.Minute)
			_, err := s.Get(ctx, "u1")

			Convey("Then it is a miss and the entry is dropped", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given concurrent writers", t, func() {
		s := repository.NewMemoryStore(repository.WithMaxSize(50))

		Convey("Then the bound holds", func() {
			var wg sync.WaitGroup
			for w := 0; w < 8; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						_ = s.Put(ctx, profile(fmt.Sprintf("w%d-%d", w, i), i))
						_, _ = s.Get(ctx, fmt.Sprintf("w%d-%d", w, i/2))
					}
				}(w)
			}
			wg.Wait()
			So(s.Count(ctx), ShouldEqual, 50)
		})
	})
}
