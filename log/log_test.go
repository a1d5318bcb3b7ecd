package log

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		l   Logger
	)
	BeforeEach(func() {
		buf = &bytes.Buffer{}
		l = NewLogger(WarnLevel, buf)
	})

	It("drops lower levels", func() {
		l.Debug("debug")
		l.Infof("info %v", 1)
		Expect(buf.Len()).To(BeZero())
	})

	It("writes level and message", func() {
		l.Warnf("evicted %s", "key")
		Expect(buf.String()).To(ContainSubstring("WARN: evicted key"))
		l.Error("failed")
		Expect(buf.String()).To(ContainSubstring("ERROR: failed"))
	})

	It("writes fields", func() {
		l.WithFields(Fields{"level": 1}).WithFields(Fields{"cache": "l1"}).Warn("full")
		Expect(buf.String()).To(ContainSubstring(`WARN: {"cache":"l1","level":1} full`))
	})

	It("panics with message", func() {
		Expect(func() { l.Panicf("broken %v", 42) }).To(PanicWith("broken 42"))
		Expect(buf.String()).To(ContainSubstring("ERROR: broken 42"))
	})

	DescribeTable("level parse",
		func(s string, expected Level, ok bool) {
			lvl, err := LevelFromString(s)
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(lvl).To(Equal(expected))
		},
		Entry("debug", "debug", DebugLevel, true),
		Entry("upper info", "INFO", InfoLevel, true),
		Entry("warn", "warn", WarnLevel, true),
		Entry("fatal", "Fatal", FatalLevel, true),
		Entry("invalid", "verbose", Level(0), false),
	)
})
