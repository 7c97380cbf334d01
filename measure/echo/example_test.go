package echo_test

import (
	"fmt"

	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
	"github.com/cwbudde/algo-pingpong/measure/echo"
)

func ExampleAnalyzer_Analyze() {
	params := param.NewSet()
	params.DryWet.Set(0)
	params.Feedback.Set(0.5)
	params.DelayTime.Set(127.0 / 1024) // odd sample count

	analyzer := echo.NewAnalyzer(1024)
	analyzer.Length = 1024

	report, err := analyzer.Analyze(params, pingpong.Left)
	if err != nil {
		panic(err)
	}

	for _, tap := range report.Taps {
		fmt.Printf("%-5s %4d %.4f\n", tap.Channel, tap.Index, tap.Amplitude)
	}
	// Output:
	// right  127 1.0000
	// right  383 0.2500
	// right  639 0.0625
	// right  895 0.0156
}
