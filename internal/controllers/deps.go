package controllers

import (
	"context"

	"github.com/sirupsen/logrus"

	"volunteer_hub/internal/cache"
	"volunteer_hub/internal/notify"
)

// UploadPresigner issues presigned upload URLs.
type UploadPresigner interface {
	PresignUpload(ctx context.Context, kind, filename string, ownerID uint) (url string, key string, err error)
}

// Options carries the optional collaborators wired in by main.
type Options struct {
	Cache     *cache.ListingCache
	Publisher notify.Publisher
	Presigner UploadPresigner
}

var (
	listingCache *cache.ListingCache
	publisher    notify.Publisher = notify.Nop{}
	presigner    UploadPresigner
)

// Configure installs collaborators; nil fields leave the feature disabled.
func Configure(opts Options) {
	listingCache = opts.Cache
	if opts.Publisher != nil {
		publisher = opts.Publisher
	} else {
		publisher = notify.Nop{}
	}
	presigner = opts.Presigner
}

// publishAsync runs a notification publish off the request path.
func publishAsync(what string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			logrus.WithError(err).WithField("notification", what).Warn("publish failed")
		}
	}()
}
