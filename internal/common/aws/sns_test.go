// internal/common/aws/sns_test.go
package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "candidate-workers/internal/common/errors"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func newTestNotifier(pub *fakePublisher) *ReviewNotifier {
	n := NewReviewNotifier(&SNSClient{client: pub}, "arn:aws:sns:me-central-1:123456789012:candidate-review")
	n.now = func() time.Time { return time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC) }
	return n
}

func TestReviewNotifier_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	require.NoError(t, newTestNotifier(pub).NotifyFlagged(context.Background(), "run-1", []string{"#42", "c-7"}))
	require.Len(t, pub.inputs, 1)

	in := pub.inputs[0]
	assert.Equal(t, "arn:aws:sns:me-central-1:123456789012:candidate-review", *in.TopicArn)
	assert.Equal(t, "run-1", *in.MessageAttributes["runId"].StringValue)
	assert.Equal(t, "2", *in.MessageAttributes["count"].StringValue)

	var msg reviewMessage
	require.NoError(t, json.Unmarshal([]byte(*in.Message), &msg))
	assert.Equal(t, "run-1", msg.RunID)
	assert.Equal(t, []string{"#42", "c-7"}, msg.CandidateIDs)
	assert.Equal(t, 1, msg.Parts)
	assert.Equal(t, time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC), msg.FlaggedAt)
}

func TestReviewNotifier_NothingFlagged(t *testing.T) {
	pub := &fakePublisher{}
	require.NoError(t, newTestNotifier(pub).NotifyFlagged(context.Background(), "run-1", nil))
	assert.Empty(t, pub.inputs)
}

func TestReviewNotifier_SplitsLargeRuns(t *testing.T) {
	ids := make([]string, maxIDsPerMessage*2+5)
	for i := range ids {
		ids[i] = fmt.Sprintf("c-%d", i)
	}

	pub := &fakePublisher{}
	require.NoError(t, newTestNotifier(pub).NotifyFlagged(context.Background(), "run-1", ids))
	require.Len(t, pub.inputs, 3)

	var last reviewMessage
	require.NoError(t, json.Unmarshal([]byte(*pub.inputs[2].Message), &last))
	assert.Equal(t, 3, last.Part)
	assert.Equal(t, 3, last.Parts)
	assert.Len(t, last.CandidateIDs, 5)
}

func TestReviewNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("throttled")}
	err := newTestNotifier(pub).NotifyFlagged(context.Background(), "run-1", []string{"c-1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, apperrors.AsStandardError(err).Code)
}
