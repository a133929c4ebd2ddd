// Package memory implements the repositories over mutex guarded maps.
// Records are copied on the way in and out so callers never share state with the store.
package memory

import (
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
)

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneListing(l *entity.Listing) *entity.Listing {
	c := *l
	c.Images = cloneStrings(l.Images)
	c.SellerID = clonePtr(l.SellerID)
	c.BrokerID = clonePtr(l.BrokerID)
	c.QualityGrade = clonePtr(l.QualityGrade)
	c.FarmingMethod = clonePtr(l.FarmingMethod)
	c.PriceRange = clonePtr(l.PriceRange)
	return &c
}

func cloneBroker(b *entity.Broker) *entity.Broker {
	c := *b
	c.Regions = cloneStrings(b.Regions)
	c.Specialties = cloneStrings(b.Specialties)
	c.ListingsHandled = cloneStrings(b.ListingsHandled)
	c.SubscriptionStart = clonePtr(b.SubscriptionStart)
	c.SubscriptionEnd = clonePtr(b.SubscriptionEnd)
	if b.Ratings != nil {
		c.Ratings = append([]entity.Rating{}, b.Ratings...)
	}
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.AvatarURL = clonePtr(u.AvatarURL)
	c.SubscriptionEnd = clonePtr(u.SubscriptionEnd)
	c.Regions = cloneStrings(u.Regions)
	c.Specialties = cloneStrings(u.Specialties)
	c.ExperienceYears = clonePtr(u.ExperienceYears)
	return &c
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
