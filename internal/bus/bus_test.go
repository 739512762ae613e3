package bus

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestBridge() (*StubBridge, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.InfoLevel)
	return NewStubBridge(log), &buf
}

func TestGetSnoopResultMatchesSpecBitTest(t *testing.T) {
	b, _ := newTestBridge()

	assert.Equal(t, Hit, b.GetSnoopResult(0x1000))    // ...00
	assert.Equal(t, HitM, b.GetSnoopResult(0x1001))   // ...01
	assert.Equal(t, NoHit, b.GetSnoopResult(0x1002))   // ...10
	assert.Equal(t, NoHit, b.GetSnoopResult(0x1003))   // ...11
}

func TestBusOperationLogsToVerbose(t *testing.T) {
	b, buf := newTestBridge()
	b.BusOperation(Read, 0x2000)
	assert.Contains(t, buf.String(), "BusRd")
	assert.Contains(t, buf.String(), "0x2000")
}

func TestMessageToCacheLogsToVerbose(t *testing.T) {
	b, buf := newTestBridge()
	b.MessageToCache(EvictLine, 0x3000)
	assert.Contains(t, buf.String(), "EVICTLINE")
}
