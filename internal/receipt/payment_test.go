package receipt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBreakdown(lines ...string) string {
	body := ""
	for _, l := range lines {
		body += l + "\n"
	}
	return strings.Replace(sampleReceipt, "PayPay（残高） 12,000円\n", body, 1)
}

func TestParsePayments(t *testing.T) {
	t.Run("single entry leaves slots two and three unused", func(t *testing.T) {
		slots, dropped := ParsePayments(sampleReceipt)

		assert.Zero(t, dropped)
		assert.True(t, slots[0].OK())
		for _, p := range slots[1:] {
			assert.False(t, p.Used())
			assert.NotEqual(t, ErrorSentinel, p.Method.String())
			assert.NotEqual(t, ErrorSentinel, p.Amount.String())
		}
	})

	t.Run("generic certificate is renamed", func(t *testing.T) {
		slots, _ := ParsePayments(withBreakdown("PayPay（残高） 39,000円", "商品券 1,000円"))

		assert.Equal(t, "PayPay（残高）", slots[0].Method.String())
		assert.Equal(t, "39000", slots[0].Amount.String())
		assert.Equal(t, "ヤフショ商品券", slots[1].Method.String())
		assert.Equal(t, "1000", slots[1].Amount.String())
		assert.False(t, slots[2].Used())
	})

	t.Run("certificate label never appears verbatim", func(t *testing.T) {
		slots, _ := ParsePayments(withBreakdown("商品券 500円", "PayPayカード 1,500円", "商品券 2,000円"))

		for _, p := range slots {
			assert.NotEqual(t, genericCertificate, p.Method.String())
		}
		assert.Equal(t, brandedCertificate, slots[0].Method.String())
		assert.Equal(t, brandedCertificate, slots[2].Method.String())
	})

	t.Run("three entries fill every slot", func(t *testing.T) {
		slots, dropped := ParsePayments(withBreakdown("A 1円", "B 2円", "C 3円"))

		assert.Zero(t, dropped)
		for i, want := range []string{"1", "2", "3"} {
			assert.Equal(t, want, slots[i].Amount.String())
		}
	})

	t.Run("entries past the third are dropped", func(t *testing.T) {
		slots, dropped := ParsePayments(withBreakdown("A 1円", "B 2円", "C 3円", "D 4円"))

		assert.Equal(t, 1, dropped)
		assert.Equal(t, "C", slots[2].Method.String())
	})

	t.Run("missing section marks every slot", func(t *testing.T) {
		text := strings.Replace(sampleReceipt, "税率別内訳", "", 1)
		slots, _ := ParsePayments(text)

		for _, p := range slots {
			assert.Equal(t, ErrorSentinel, p.Method.String())
			assert.Equal(t, ErrorSentinel, p.Amount.String())
		}

		res := Extract(text)
		assert.True(t, res.HadError)
		assert.Equal(t, ErrorSentinel, SynthesizeFileName(res.Record).String())
	})

	t.Run("line without an amount", func(t *testing.T) {
		slots, _ := ParsePayments(withBreakdown("PayPay残高"))

		assert.True(t, slots[0].Method.IsMissing())
		assert.True(t, slots[0].Amount.IsMissing())
	})

	t.Run("non numeric amount", func(t *testing.T) {
		slots, _ := ParsePayments(withBreakdown("PayPay 一万円"))

		assert.Equal(t, "PayPay", slots[0].Method.String())
		assert.True(t, slots[0].Amount.IsMissing())
	})
}
