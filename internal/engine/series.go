package engine

import (
	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/domain"
)

// BucketedValues maps line ID -> bucket key -> summed value.
type BucketedValues map[string]map[string]float64

// BucketValues sums each line's monthly values into buckets.
func BucketValues(values ValueMap, buckets []calendar.Bucket, lineIDs []string) BucketedValues {
	out := make(BucketedValues, len(lineIDs))
	for _, id := range lineIDs {
		row := make(map[string]float64, len(buckets))
		for _, b := range buckets {
			row[b.Key] = values.Sum(id, b.Months)
		}
		out[id] = row
	}
	return out
}

// Layer is one named value map stacked in a chart.
type Layer struct {
	Overlay domain.Overlay
	Values  ValueMap
}

type Segment struct {
	Overlay domain.Overlay
	Value   float64
}

// SeriesPoint is one bucket of a stacked chart. Positive and Negative split
// the segments by sign so positive bars stack up and negative bars stack down.
type SeriesPoint struct {
	Bucket   calendar.Bucket
	Segments []Segment
	Total    float64
	Positive float64
	Negative float64
}

// ChartSeries builds the per-bucket stacked series for a single line.
func ChartSeries(lineID string, buckets []calendar.Bucket, layers []Layer) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		p := SeriesPoint{Bucket: b, Segments: make([]Segment, 0, len(layers))}
		for _, layer := range layers {
			v := layer.Values.Sum(lineID, b.Months)
			p.Segments = append(p.Segments, Segment{Overlay: layer.Overlay, Value: v})
			p.Total += v
			if v >= 0 {
				p.Positive += v
			} else {
				p.Negative += v
			}
		}
		points = append(points, p)
	}
	return points
}
