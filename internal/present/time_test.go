package present

import (
	"testing"
	"time"

	"rawabit/internal/i18n"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	ar := i18n.Printer(i18n.Arabic)

	tests := []struct {
		name string
		lang i18n.Lang
		ago  time.Duration
		want string
	}{
		{"just now ar", i18n.Arabic, 20 * time.Second, "الآن"},
		{"just now en", i18n.English, 0, "just now"},
		{"one minute ar", i18n.Arabic, time.Minute, "منذ دقيقة"},
		{"two minutes ar", i18n.Arabic, 2 * time.Minute, "منذ دقيقتين"},
		{"five minutes ar", i18n.Arabic, 5 * time.Minute, "منذ " + ar.Sprintf("%d", 5) + " دقائق"},
		{"eleven minutes ar", i18n.Arabic, 11 * time.Minute, "منذ " + ar.Sprintf("%d", 11) + " دقيقة"},
		{"two hours ar", i18n.Arabic, 2 * time.Hour, "منذ ساعتين"},
		{"one day ar", i18n.Arabic, 25 * time.Hour, "منذ يوم"},
		{"fifteen days ar", i18n.Arabic, 15 * 24 * time.Hour, "منذ " + ar.Sprintf("%d", 15) + " يوماً"},
		{"one minute en", i18n.English, 90 * time.Second, "1 minute ago"},
		{"minutes en", i18n.English, 5 * time.Minute, "5 minutes ago"},
		{"hour en", i18n.English, time.Hour, "1 hour ago"},
		{"days en", i18n.English, 3 * 24 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.lang, now.Add(-tt.ago), now))
		})
	}
}

func TestRelativeTime_OldFallsBackToDate(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	then := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "March 15, 2024", RelativeTime(i18n.English, then, now))
	assert.Equal(t, FormatDate(i18n.Arabic, then), RelativeTime(i18n.Arabic, then, now))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 15, 2024", FormatDate(i18n.English, d))

	ar := i18n.Printer(i18n.Arabic)
	got := FormatDate(i18n.Arabic, d)
	assert.Contains(t, got, "مارس")
	assert.Contains(t, got, ar.Sprintf("%d", 15))
	assert.NotContains(t, got, ",")
}
