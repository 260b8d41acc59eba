package repository

import (
	"context"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultNotificationsTableName = "notifications"
	notificationsRecipientIndex   = "recipient_id-index"
)

type notificationItem struct {
	ID                string `dynamodbav:"id"`
	RecipientID       string `dynamodbav:"recipient_id,omitempty"`
	RecipientEmail    string `dynamodbav:"recipient_email,omitempty"`
	NotificationType  string `dynamodbav:"notification_type"`
	Title             string `dynamodbav:"title"`
	Message           string `dynamodbav:"message"`
	Read              bool   `dynamodbav:"read"`
	RelatedEntityType string `dynamodbav:"related_entity_type,omitempty"`
	RelatedEntityID   string `dynamodbav:"related_entity_id,omitempty"`
	SentAt            string `dynamodbav:"sent_at"`
	CreatedAt         string `dynamodbav:"created_at"`
}

// NotificationDynamoRepository persists in-app notifications in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: recipient_id-index (PK: recipient_id, SK: created_at)
type NotificationDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.INotificationRepository = (*NotificationDynamoRepository)(nil)

func NewNotificationDynamoRepository(ddb DynamoDBAPI, tableName string) *NotificationDynamoRepository {
	return &NotificationDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultNotificationsTableName)}
}

func (r *NotificationDynamoRepository) Create(ctx context.Context, n entities.Notification) (entities.Notification, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toNotificationItem(n)); err != nil {
		return entities.Notification{}, err
	}
	return n, nil
}

func (r *NotificationDynamoRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]entities.Notification, error) {
	in := r.byRecipient(recipientID)
	in.ScanIndexForward = aws.Bool(false)
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	return unmarshalAll(out.Items, fromNotificationItem)
}

func (r *NotificationDynamoRepository) MarkRead(ctx context.Context, id, recipientID string) (entities.Notification, error) {
	var it notificationItem
	found, err := updateExisting(ctx, r.ddb, r.tableName, id,
		"SET #read = :read", "#recipient_id = :recipient_id",
		map[string]types.AttributeValue{
			":read":         &types.AttributeValueMemberBOOL{Value: true},
			":recipient_id": str(recipientID),
		},
		map[string]string{
			"#read":         "read",
			"#recipient_id": "recipient_id",
		},
		&it)
	if err != nil || !found {
		return entities.Notification{}, err
	}
	return fromNotificationItem(it), nil
}

func (r *NotificationDynamoRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	in := r.byRecipient(recipientID)
	in.FilterExpression = aws.String("#read = :unread")
	in.ExpressionAttributeNames = map[string]string{"#read": "read"}
	in.ExpressionAttributeValues[":unread"] = &types.AttributeValueMemberBOOL{Value: false}
	return countQuery(ctx, r.ddb, in)
}

func (r *NotificationDynamoRepository) byRecipient(recipientID string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(notificationsRecipientIndex),
		KeyConditionExpression: aws.String("recipient_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": str(recipientID),
		},
	}
}

func toNotificationItem(n entities.Notification) notificationItem {
	return notificationItem{
		ID:                n.ID,
		RecipientID:       n.RecipientID,
		RecipientEmail:    n.RecipientEmail,
		NotificationType:  string(n.NotificationType),
		Title:             n.Title,
		Message:           n.Message,
		Read:              n.Read,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		SentAt:            formatTime(n.SentAt),
		CreatedAt:         formatTime(n.CreatedAt),
	}
}

func fromNotificationItem(it notificationItem) entities.Notification {
	return entities.Notification{
		ID:                it.ID,
		RecipientID:       it.RecipientID,
		RecipientEmail:    it.RecipientEmail,
		NotificationType:  entities.NotificationType(it.NotificationType),
		Title:             it.Title,
		Message:           it.Message,
		Read:              it.Read,
		RelatedEntityType: it.RelatedEntityType,
		RelatedEntityID:   it.RelatedEntityID,
		SentAt:            parseTime(it.SentAt),
		CreatedAt:         parseTime(it.CreatedAt),
	}
}
