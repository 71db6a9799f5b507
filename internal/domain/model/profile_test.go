package model_test

import (
	"testing"

	model "github.com/okian/ghostboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestProfile(t *testing.T) {
	convey.Convey("Given a guest profile", t, func() {
		p := model.Guest("", 10)

		convey.Convey("Then it carries the guest defaults", func() {
			convey.So(p.DisplayName(), convey.ShouldEqual, model.GuestName)
			convey.So(p.TotalScore, convey.ShouldEqual, 0)
			convey.So(p.PackID, convey.ShouldEqual, 10)
		})
	})

	convey.Convey("Given profiles with placeholder names", t, func() {
		convey.Convey("Then the display name falls back to Guest", func() {
			convey.So(model.Profile{FullName: "Unknown Aspirant"}.DisplayName(), convey.ShouldEqual, model.GuestName)
			convey.So(model.Profile{}.DisplayName(), convey.ShouldEqual, model.GuestName)
			convey.So(model.Profile{FullName: "Meena Iyer"}.DisplayName(), convey.ShouldEqual, "Meena Iyer")
		})
	})

	convey.Convey("Given profiles with and without a subscription status", t, func() {
		convey.Convey("Then an unknown status reads as free", func() {
			convey.So(model.Profile{}.Subscription(), convey.ShouldEqual, model.FreeSubscription)
			convey.So(model.Guest("", 10).Subscription(), convey.ShouldEqual, "free")
			convey.So(model.Profile{SubscriptionStatus: "premium"}.Subscription(), convey.ShouldEqual, "premium")
		})
	})
}
