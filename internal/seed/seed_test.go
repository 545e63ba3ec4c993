package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"videoshare/internal/entity"
)

func TestSeedIsConsistent(t *testing.T) {
	channels := map[string]entity.Channel{}
	for _, ch := range Channels() {
		assert.Equal(t, entity.Slugify(ch.Name), ch.Slug, ch.Name)
		channels[ch.ID] = ch
	}
	seen := map[string]bool{}
	for _, v := range Videos() {
		assert.Contains(t, channels, v.ChannelID, v.Title)
		assert.False(t, seen[v.ID], "duplicate id %s", v.ID)
		seen[v.ID] = true
		assert.Equal(t, entity.NormalizeTags(v.Tags), v.Tags)
	}
}

func TestSeedReturnsCopies(t *testing.T) {
	a := Videos()
	a[0].Title = "changed"
	assert.NotEqual(t, "changed", Videos()[0].Title)
}
