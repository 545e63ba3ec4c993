// Package seed holds the demo catalog shipped with the application.
package seed

import (
	"time"

	"videoshare/internal/entity"
)

const sampleBucket = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

var epoch = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

// Channels returns a fresh copy of the demo channels.
func Channels() []entity.Channel {
	return []entity.Channel{
		{
			ID:              "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c01",
			Name:            "Blender Studio",
			Slug:            "blender-studio",
			AvatarURL:       "https://images.unsplash.com/photo-1535223289827-42f1e9919769?w=88&q=80",
			BannerURL:       "https://images.unsplash.com/photo-1536440136628-849c177e76a1?w=1280&q=80",
			Description:     "Open movies made with free software.",
			SubscriberCount: 1_250_000,
			CreatedAt:       epoch,
		},
		{
			ID:              "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c02",
			Name:            "Road Trips",
			Slug:            "road-trips",
			AvatarURL:       "https://images.unsplash.com/photo-1469854523086-cc02fe5d8800?w=88&q=80",
			Description:     "Cars, roads and places worth the drive.",
			SubscriberCount: 48_300,
			CreatedAt:       epoch,
		},
		{
			ID:              "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c03",
			Name:            "Lofi Lab",
			Slug:            "lofi-lab",
			Description:     "Beats to study to.",
			SubscriberCount: 912,
			CreatedAt:       epoch,
		},
	}
}

// Videos returns a fresh copy of the demo videos, without joined channels.
func Videos() []entity.Video {
	return []entity.Video{
		{
			ID:           "3f9b6f0e-5d7c-4a8e-8b21-6c0d2e4f7a01",
			ChannelID:    "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c01",
			Title:        "Big Buck Bunny",
			Description:  "A giant rabbit takes revenge on three bullying rodents.",
			ThumbnailURL: sampleBucket + "images/BigBuckBunny.jpg",
			VideoURL:     sampleBucket + "BigBuckBunny.mp4",
			Views:        2_400_000,
			Duration:     "9:56",
			UploadedAt:   epoch.Add(24 * time.Hour),
			Tags:         []string{"film", "animation"},
		},
		{
			ID:           "3f9b6f0e-5d7c-4a8e-8b21-6c0d2e4f7a02",
			ChannelID:    "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c01",
			Title:        "Sintel",
			Description:  "A lonely young woman searches for her dragon.",
			ThumbnailURL: sampleBucket + "images/Sintel.jpg",
			VideoURL:     sampleBucket + "Sintel.mp4",
			Views:        860_000,
			Duration:     "14:48",
			UploadedAt:   epoch.Add(72 * time.Hour),
			Tags:         []string{"film", "art"},
		},
		{
			ID:           "3f9b6f0e-5d7c-4a8e-8b21-6c0d2e4f7a03",
			ChannelID:    "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c02",
			Title:        "For Bigger Joyrides",
			Description:  "Taking the long way home.",
			ThumbnailURL: sampleBucket + "images/ForBiggerJoyrides.jpg",
			VideoURL:     sampleBucket + "ForBiggerJoyrides.mp4",
			Views:        15_200,
			Duration:     "0:15",
			UploadedAt:   epoch.Add(120 * time.Hour),
			Tags:         []string{"travel"},
		},
		{
			ID:           "3f9b6f0e-5d7c-4a8e-8b21-6c0d2e4f7a04",
			ChannelID:    "8c1f3a52-2b1e-4c38-9d4a-0f6e1b7a9c03",
			Title:        "lofi hip hop radio",
			Description:  "Relaxing beats for work and study.",
			ThumbnailURL: "https://img.youtube.com/vi/jfKfPfyJRdk/hqdefault.jpg",
			VideoURL:     "https://www.youtube.com/embed/jfKfPfyJRdk",
			Views:        4_321,
			Duration:     "0:00",
			UploadedAt:   epoch.Add(168 * time.Hour),
			Tags:         []string{"music", "live"},
		},
	}
}
