package instrumentation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNopCollectorDiscardsEverything(t *testing.T) {
	var c NopCollector
	c.ObserveSend("Success")
	c.ObserveReceive("ChannelEmpty")
	c.ObserveWait("spin")
	c.SetDepth(42)
	// Nothing to assert: NopCollector has no observable state. This test
	// only guards that the methods exist and never panic.
}

func TestPrometheusCollectorImplementsCollector(t *testing.T) {
	var _ Collector = (*PrometheusCollector)(nil)
	var _ Collector = NopCollector{}
}

func TestPrometheusCollectorRegistersUnderChannelLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg, "test-channel")

	c.ObserveSend("Success")
	c.ObserveSend("Success")
	c.ObserveReceive("ChannelEmpty")
	c.ObserveWait("yield")
	c.SetDepth(7)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var sawSend, sawDepth bool
	for _, f := range families {
		switch f.GetName() {
		case "latchan_send_total":
			sawSend = true
			m := f.GetMetric()[0]
			if got := m.GetCounter().GetValue(); got != 2 {
				t.Fatalf("latchan_send_total = %v, want 2", got)
			}
			if labelValue(m, "channel") != "test-channel" {
				t.Fatalf("channel label = %q, want test-channel", labelValue(m, "channel"))
			}
		case "latchan_depth":
			sawDepth = true
			if got := f.GetMetric()[0].GetGauge().GetValue(); got != 7 {
				t.Fatalf("latchan_depth = %v, want 7", got)
			}
		}
	}
	if !sawSend {
		t.Fatal("latchan_send_total not registered")
	}
	if !sawDepth {
		t.Fatal("latchan_depth not registered")
	}
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
