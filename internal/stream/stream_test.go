package stream

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
)

type publishedMessage struct {
	body        []byte
	routingKey  string
	contentType string
}

// fakePublisher records every publish and fails from failAfter onwards
// (zero-based call index, -1 never fails).
type fakePublisher struct {
	published []publishedMessage
	failAfter int
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{failAfter: -1}
}

func (f *fakePublisher) PublishWithRetry(body []byte, routingKey, contentType string, _ retry.Strategy, _ ...rabbitmq.PublishingOptions) error {
	if f.failAfter >= 0 && len(f.published) >= f.failAfter {
		return errors.New("broker down")
	}

	f.published = append(f.published, publishedMessage{
		body:        body,
		routingKey:  routingKey,
		contentType: contentType,
	})

	return nil
}

func testClient(pub *fakePublisher) *Client {
	return &Client{pub: pub, source: "notifier-test"}
}

func TestPublish_StampsEnvelope(t *testing.T) {
	pub := newFakePublisher()
	c := testClient(pub)

	id := uuid.New()
	msg := NotificationMessage{ID: id, Message: "hello", Type: "info"}

	err := c.Publish(TopicNotifications, msg, id.String())
	assert.NoError(t, err)
	assert.Len(t, pub.published, 1)
	assert.Equal(t, TopicNotifications, pub.published[0].routingKey)
	assert.Equal(t, "application/json", pub.published[0].contentType)

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(pub.published[0].body, &envelope))
	assert.Equal(t, "hello", envelope["message"])
	assert.Equal(t, "notifier-test", envelope["source"])
	assert.Equal(t, id.String(), envelope["key"])

	_, err = time.Parse(time.RFC3339Nano, envelope["timestamp"].(string))
	assert.NoError(t, err)
}

func TestPublishRaw_PassesBodyUnchanged(t *testing.T) {
	pub := newFakePublisher()
	c := testClient(pub)

	raw := []byte(`{"id":"abc","attempt":2}`)

	err := c.PublishRaw(TopicBatchJobs, raw)
	assert.NoError(t, err)
	assert.Len(t, pub.published, 1)
	assert.Equal(t, raw, pub.published[0].body)
	assert.Equal(t, TopicBatchJobs, pub.published[0].routingKey)
}

func TestPublishBatch_PublishesAll(t *testing.T) {
	pub := newFakePublisher()
	c := testClient(pub)

	messages := []any{
		EventMessage{ID: uuid.New(), EventType: "notification.sent"},
		EventMessage{ID: uuid.New(), EventType: "notification.delivered"},
		EventMessage{ID: uuid.New(), EventType: "notification.failed"},
	}

	err := c.PublishBatch(TopicEvents, messages)
	assert.NoError(t, err)
	assert.Len(t, pub.published, 3)

	for _, p := range pub.published {
		assert.Equal(t, TopicEvents, p.routingKey)

		var envelope map[string]any
		assert.NoError(t, json.Unmarshal(p.body, &envelope))
		assert.Equal(t, "notifier-test", envelope["source"])
		assert.NotEmpty(t, envelope["timestamp"])
	}
}

func TestPublishBatch_FirstFailureAborts(t *testing.T) {
	pub := newFakePublisher()
	pub.failAfter = 1
	c := testClient(pub)

	messages := []any{
		EventMessage{ID: uuid.New()},
		EventMessage{ID: uuid.New()},
		EventMessage{ID: uuid.New()},
	}

	err := c.PublishBatch(TopicEvents, messages)
	assert.Error(t, err)
	assert.Len(t, pub.published, 1)
}

func TestPublishDeadLetter_Envelope(t *testing.T) {
	pub := newFakePublisher()
	c := testClient(pub)

	original := []byte(`{"id":"abc"}`)

	err := c.PublishDeadLetter(TopicNotifications, original, errors.New("smtp timeout"))
	assert.NoError(t, err)
	assert.Len(t, pub.published, 1)
	assert.Equal(t, TopicDeadLetter, pub.published[0].routingKey)

	var dl DeadLetterMessage
	assert.NoError(t, json.Unmarshal(pub.published[0].body, &dl))
	assert.Equal(t, TopicNotifications, dl.OriginalTopic)
	assert.Equal(t, string(original), dl.Message)
	assert.Equal(t, "smtp timeout", dl.Error)
	assert.Equal(t, "notifier-test", dl.Source)
	assert.False(t, dl.Timestamp.IsZero())
}
