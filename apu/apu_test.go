package apu

import "testing"

func TestPulseDecodesFields(t *testing.T) {
	r := NewRegisters()
	r.Write(0x00, 0b11_1_1_0101) // duty=3, loop, constant volume, vol=5
	r.Write(0x01, 0b1_010_1_011) // sweep enabled, period=2, negate, shift=3
	r.Write(0x02, 0xFF)          // timer low
	r.Write(0x03, 0b00000_001) // length load top 5 bits, timer hi=1

	p := r.Pulse1()
	if p.Duty() != 3 {
		t.Errorf("Duty() = %d, want 3", p.Duty())
	}
	if !p.EnvelopeLoop() || !p.ConstantVolume() {
		t.Error("expected envelope loop and constant volume set")
	}
	if p.Volume() != 5 {
		t.Errorf("Volume() = %d, want 5", p.Volume())
	}
	if !p.SweepEnabled() || p.SweepPeriod() != 2 || !p.SweepNegate() || p.SweepShift() != 3 {
		t.Errorf("sweep fields mismatch: %+v", p)
	}
	if p.Timer() != 0x1FF {
		t.Errorf("Timer() = %#x, want 0x1FF", p.Timer())
	}
}

func TestPulse2IndependentOfPulse1(t *testing.T) {
	r := NewRegisters()
	r.Write(0x00, 0xFF)
	r.Write(0x04, 0x00)
	if r.Pulse2().Volume() != 0 {
		t.Errorf("Pulse2 volume = %d, want 0 (independent of Pulse1)", r.Pulse2().Volume())
	}
}

func TestStatusReadWriteRoundTrips(t *testing.T) {
	r := NewRegisters()
	r.Write(0x15, 0x1F)
	if got := r.Read(0x15); got != 0x1F {
		t.Errorf("status = %#02x, want 0x1F", got)
	}
}

func TestOtherRegistersReadAsZero(t *testing.T) {
	r := NewRegisters()
	r.Write(0x00, 0xFF)
	if got := r.Read(0x00); got != 0 {
		t.Errorf("read of write-only register = %#02x, want 0", got)
	}
}

func TestFrequencyFormula(t *testing.T) {
	r := NewRegisters()
	r.Write(0x02, 0xFE) // timer low
	r.Write(0x03, 0x00)
	freq := r.Pulse1().Frequency()
	want := cpuClockHz / (16.0 * 255.0)
	if freq != want {
		t.Errorf("Frequency() = %f, want %f", freq, want)
	}
}
