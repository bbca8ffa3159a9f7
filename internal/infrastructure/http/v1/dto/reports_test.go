package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
)

func TestReportQuery_IgnoresMalformedValues(t *testing.T) {
	wh1, wh2 := id.New(), id.New()
	values := url.Values{
		"date_from": {"2024-02-30"},
		"date_to":   {"2024-03-31"},
		"warehouse": {wh1.String() + ",garbage", wh2.String()},
		"client":    {"not-an-id"},
		"limit":     {"ten"},
		"metric":    {"qty"},
		"group_by":  {"fortnight"},
	}
	q := NewReportQuery(values)

	f := q.Ranking()
	assert.Nil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *f.DateTo)
	assert.Equal(t, []id.ID{wh1, wh2}, f.Warehouses)
	assert.Empty(t, f.Clients)
	assert.Equal(t, 0, f.Limit)
	assert.Equal(t, reports.MetricQty, f.Metric)

	assert.Equal(t, reports.Day, q.SalesVolume().GroupBy)
}

func TestReportQuery_Forecast(t *testing.T) {
	q := NewReportQuery(url.Values{
		"window_days":    {"-5"},
		"threshold_days": {"7"},
		"only_short":     {"false"},
	})
	f := q.Forecast()
	assert.Equal(t, 0, f.WindowDays)
	assert.Equal(t, 7, f.ThresholdDays)
	require.NotNil(t, f.OnlyShort)
	assert.False(t, *f.OnlyShort)

	assert.Nil(t, NewReportQuery(url.Values{"only_short": {"maybe"}}).Forecast().OnlyShort)
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2024-05-06T23:10:00+05:00")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), *d)
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("06.05.2024"))
}

func TestSplitValues(t *testing.T) {
	assert.Equal(t, []string{"pending", "active", "finished"}, SplitValues([]string{"pending, active", "", "finished"}))
}
