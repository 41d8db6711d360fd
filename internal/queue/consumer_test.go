package queue

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"hourline.app/server/internal/model"
)

var _ = Describe("ParseMessage", func() {
	It("parses an email entry written by the producer", func() {
		wsID := int64(42)
		values, err := emailValues(model.EmailMessage{
			To:          "ana@example.com",
			Template:    model.EmailTemplateInvitation,
			Data:        map[string]string{"workspace_name": "Acme"},
			WorkspaceID: &wsID,
		}, 0)
		Expect(err).NotTo(HaveOccurred())

		// go-redis hands stream values back as strings.
		raw := redis.XMessage{ID: "1-0", Values: map[string]any{}}
		for k, v := range values {
			raw.Values[k] = stringify(v)
		}

		msg, err := ParseMessage(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1-0"))
		Expect(msg.Attempt).To(Equal(1))
		Expect(msg.Email.To).To(Equal("ana@example.com"))
		Expect(msg.Email.Template).To(Equal(model.EmailTemplateInvitation))
		Expect(msg.Email.Data).To(HaveKeyWithValue("workspace_name", "Acme"))
		Expect(msg.Email.WorkspaceID).To(HaveValue(Equal(wsID)))
	})

	It("rejects entries without a recipient", func() {
		_, err := ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"template": "welcome",
		}})
		Expect(err).To(MatchError(ContainSubstring("missing to")))
	})

	It("rejects unknown templates", func() {
		_, err := ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"to":       "ana@example.com",
			"template": "newsletter",
		}})
		Expect(err).To(MatchError(ContainSubstring("unknown template")))
	})

	It("rejects malformed template data", func() {
		_, err := ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"to":       "ana@example.com",
			"template": "welcome",
			"data":     "{not json",
		}})
		Expect(err).To(MatchError(ContainSubstring("parsing data")))
	})

	It("keeps the attempt counter", func() {
		msg, err := ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"to":       "ana@example.com",
			"template": "welcome",
			"attempt":  "3",
			"trace_id": "abc",
		}})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(3))
		Expect(msg.TraceID).To(Equal("abc"))
		Expect(msg.Email.Data).To(BeNil())
	})
})

var _ = Describe("retryValues", func() {
	It("bumps the attempt and keeps the trace id", func() {
		values := retryValues(Message{
			ID:      "1-0",
			Email:   model.EmailMessage{To: "ana@example.com", Template: model.EmailTemplateWelcome},
			Attempt: 2,
			TraceID: "trace",
		}, 3)

		Expect(values).To(HaveKeyWithValue("attempt", 3))
		Expect(values).To(HaveKeyWithValue("trace_id", "trace"))
		Expect(values).To(HaveKeyWithValue("template", "welcome"))
		Expect(values).To(HaveKeyWithValue("data", "{}"))
	})

	It("copies raw fields for entries that never parsed", func() {
		raw := redis.XMessage{ID: "1-0", Values: map[string]any{"garbage": "x"}}
		values := retryValues(Message{ID: raw.ID, Attempt: 1, Raw: raw}, 1)

		Expect(values).To(HaveKeyWithValue("garbage", "x"))
		Expect(values).To(HaveKeyWithValue("attempt", 1))
		Expect(raw.Values).NotTo(HaveKey("attempt"))
	})
})

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}
