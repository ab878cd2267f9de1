// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/matching/bulk"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const notificationChannel = "sns"

// maxIDsPerMessage keeps a review message well below the SNS 256 KB limit.
const maxIDsPerMessage = 1000

var _ bulk.Notifier = (*ReviewNotifier)(nil)

type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSClient struct {
	client snsPublisher
}

func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

func (s *SNSClient) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input)
}

// ReviewNotifier publishes the candidates a bulk run flagged for manual
// curation to an SNS topic.
type ReviewNotifier struct {
	client   *SNSClient
	topicARN string
	now      func() time.Time
}

func NewReviewNotifier(client *SNSClient, topicARN string) *ReviewNotifier {
	return &ReviewNotifier{client: client, topicARN: topicARN, now: time.Now}
}

type reviewMessage struct {
	RunID        string    `json:"runId"`
	CandidateIDs []string  `json:"candidateIds"`
	Part         int       `json:"part"`
	Parts        int       `json:"parts"`
	FlaggedAt    time.Time `json:"flaggedAt"`
}

func (n *ReviewNotifier) NotifyFlagged(ctx context.Context, runID string, candidateIDs []string) error {
	if len(candidateIDs) == 0 {
		return nil
	}

	parts := (len(candidateIDs) + maxIDsPerMessage - 1) / maxIDsPerMessage
	flaggedAt := n.now().UTC()

	for part := 0; part < parts; part++ {
		start := part * maxIDsPerMessage
		end := min(start+maxIDsPerMessage, len(candidateIDs))

		body, err := json.Marshal(reviewMessage{
			RunID:        runID,
			CandidateIDs: candidateIDs[start:end],
			Part:         part + 1,
			Parts:        parts,
			FlaggedAt:    flaggedAt,
		})
		if err != nil {
			return apperrors.NewNotificationSendFailedError(notificationChannel, err)
		}

		_, err = n.client.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(n.topicARN),
			Subject:  aws.String("Candidates flagged for review"),
			Message:  aws.String(string(body)),
			MessageAttributes: map[string]types.MessageAttributeValue{
				"runId": {DataType: aws.String("String"), StringValue: aws.String(runID)},
				"count": {DataType: aws.String("Number"), StringValue: aws.String(fmt.Sprint(end - start))},
			},
		})
		if err != nil {
			return apperrors.NewNotificationSendFailedError(notificationChannel, err)
		}
	}
	return nil
}
