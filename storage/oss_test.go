package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	now := time.Now()
	want := fmt.Sprintf("photos/%d/%d/abc.jpg", now.Year(), int(now.Month()))
	assert.Equal(t, want, ObjectKey("photos", "abc.jpg"))
}

func TestPublicURL(t *testing.T) {
	t.Setenv("OSS_BUCKET", "meng-gallery")
	t.Setenv("OSS_ENDPOINT", "oss-cn-hangzhou.aliyuncs.com")

	assert.Equal(t,
		"https://meng-gallery.oss-cn-hangzhou.aliyuncs.com/photos/2024/3/a.jpg",
		PublicURL("photos/2024/3/a.jpg"))
}

func TestThumbnailURL(t *testing.T) {
	t.Setenv("OSS_BUCKET", "meng-gallery")
	t.Setenv("OSS_ENDPOINT", "oss-cn-hangzhou.aliyuncs.com")

	got := ThumbnailURL("photos/2024/3/a.jpg")
	assert.Equal(t,
		"https://meng-gallery.oss-cn-hangzhou.aliyuncs.com/photos/2024/3/a.jpg"+
			"?x-oss-process=image/resize,w_300,h_300,m_fill",
		got)
}
