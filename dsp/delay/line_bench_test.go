package delay

import "testing"

func BenchmarkLineReadInterpolated(b *testing.B) {
	d, _ := New(88200)
	for i := 0; i < d.Len(); i++ {
		d.WriteAt(i, float64(i%97)/97)
	}

	pos := 0.0

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.ReadInterpolated(pos)
		pos += 1.37
		if pos >= float64(d.Len()) {
			pos -= float64(d.Len())
		}
	}
}

func BenchmarkLineWriteAdvance(b *testing.B) {
	d, _ := New(88200)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.Write(0.5)
		d.Advance()
	}
}
