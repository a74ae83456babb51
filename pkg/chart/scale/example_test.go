package scale_test

import (
	"fmt"

	"github.com/matzehuels/plotline/pkg/chart/scale"
)

func ExampleCompute() {
	// A 100-pixel axis over three data values.
	s := scale.Compute(scale.Config{Length: 100}, []float64{2, 8, 4}, nil)

	fmt.Println("lowest:", s.Lowest)
	fmt.Println("highest:", s.Highest)
	fmt.Println("range:", s.Range)
	fmt.Println("length:", s.Length)
	// Output:
	// lowest: 2
	// highest: 8
	// range: 6
	// length: 100
}

func ExampleCompute_padding() {
	// Padding is configured in pixels and converted to data space, so
	// 10 pixels of breathing room stay 10 pixels at any data range.
	cfg := scale.Config{
		Length:  100,
		Padding: scale.Edges{Lower: 10, Upper: 10},
	}
	s := scale.Compute(cfg, []float64{0, 10}, nil)

	fmt.Println(s.Lowest, s.Highest, s.Range)
	// Output:
	// -1 11 12
}

func ExampleAtLeast() {
	// A floor keeps the axis from showing values below zero even when
	// the data extends further down.
	cfg := scale.Config{Length: 100}
	cfg.Restrict.Lower = scale.AtLeast(0)

	s := scale.Compute(cfg, []float64{-5, 10}, nil)

	fmt.Println(s.Lowest, s.Highest)
	// Output:
	// 0 10
}
