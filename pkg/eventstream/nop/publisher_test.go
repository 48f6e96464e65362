package nop_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/eventstream"
	"github.com/papercomputeco/unibot/pkg/eventstream/nop"
)

var _ = Describe("Publisher", func() {
	var p *nop.Publisher

	BeforeEach(func() {
		p = nop.NewPublisher()
	})

	It("satisfies eventstream.Publisher", func() {
		var _ eventstream.Publisher = p
	})

	It("returns ErrNilTurnEvent for nil events", func() {
		Expect(p.PublishTurn(context.Background(), nil)).To(MatchError(eventstream.ErrNilTurnEvent))
		Expect(p.Dropped()).To(BeZero())
	})

	It("counts dropped events", func() {
		Expect(p.PublishTurn(context.Background(), &eventstream.TurnEvent{})).To(Succeed())
		Expect(p.PublishTurn(context.Background(), &eventstream.TurnEvent{})).To(Succeed())
		Expect(p.Dropped()).To(Equal(int64(2)))
	})

	It("closes successfully", func() {
		Expect(p.Close()).To(Succeed())
	})
})
