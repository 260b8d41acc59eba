package repository

import (
	"context"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "quotes"

type quoteLineItem struct {
	Service     string `dynamodbav:"service"`
	Description string `dynamodbav:"description"`
	Price       int64  `dynamodbav:"price"`
	Quantity    int    `dynamodbav:"quantity"`
}

type quoteItem struct {
	ID             string          `dynamodbav:"id"`
	VehicleID      string          `dynamodbav:"vehicle_id"`
	ClientName     string          `dynamodbav:"client_name"`
	ClientEmail    string          `dynamodbav:"client_email,omitempty"`
	Items          []quoteLineItem `dynamodbav:"items"`
	Subtotal       int64           `dynamodbav:"subtotal"`
	Tax            int64           `dynamodbav:"tax"`
	Total          int64           `dynamodbav:"total"`
	Notes          string          `dynamodbav:"notes,omitempty"`
	Status         string          `dynamodbav:"status"`
	ApprovedAt     string          `dynamodbav:"approved_at,omitempty"`
	SignatureURL   string          `dynamodbav:"signature_url,omitempty"`
	CedulaPhotoURL string          `dynamodbav:"cedula_photo_url,omitempty"`
	CreatedAt      string          `dynamodbav:"created_at"`
	CreatedBy      string          `dynamodbav:"created_by"`
}

// QuoteDynamoRepository persists quotes in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type QuoteDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoDBAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultQuotesTableName)}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toQuoteItem(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) List(ctx context.Context) ([]entities.Quote, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	return unmarshalAll(raw, fromQuoteItem)
}

// Approve records the client's approval. The write only succeeds while the quote is pending.
func (r *QuoteDynamoRepository) Approve(ctx context.Context, id string, approvedAt time.Time, signatureURL, cedulaPhotoURL string) (entities.Quote, error) {
	expr := "SET #status = :approved, #approved_at = :approved_at"
	values := map[string]types.AttributeValue{
		":approved":    str(string(entities.QuoteStatusApproved)),
		":pending":     str(string(entities.QuoteStatusPending)),
		":approved_at": str(formatTime(approvedAt)),
	}
	names := map[string]string{
		"#status":      "status",
		"#approved_at": "approved_at",
	}
	if signatureURL != "" {
		expr += ", #signature_url = :signature_url"
		values[":signature_url"] = str(signatureURL)
		names["#signature_url"] = "signature_url"
	}
	if cedulaPhotoURL != "" {
		expr += ", #cedula_photo_url = :cedula_photo_url"
		values[":cedula_photo_url"] = str(cedulaPhotoURL)
		names["#cedula_photo_url"] = "cedula_photo_url"
	}

	var it quoteItem
	found, err := updateExisting(ctx, r.ddb, r.tableName, id, expr, "#status = :pending", values, names, &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) CountByStatus(ctx context.Context, status entities.QuoteStatus) (int, error) {
	return countScan(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": str(string(status)),
		},
	})
}

func toQuoteItem(q entities.Quote) quoteItem {
	lines := make([]quoteLineItem, len(q.Items))
	for i, it := range q.Items {
		lines[i] = quoteLineItem{
			Service:     string(it.Service),
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		}
	}
	return quoteItem{
		ID:             q.ID,
		VehicleID:      q.VehicleID,
		ClientName:     q.ClientName,
		ClientEmail:    q.ClientEmail,
		Items:          lines,
		Subtotal:       q.Subtotal,
		Tax:            q.Tax,
		Total:          q.Total,
		Notes:          q.Notes,
		Status:         string(q.Status),
		ApprovedAt:     formatTimePtr(q.ApprovedAt),
		SignatureURL:   q.SignatureURL,
		CedulaPhotoURL: q.CedulaPhotoURL,
		CreatedAt:      formatTime(q.CreatedAt),
		CreatedBy:      q.CreatedBy,
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	lines := make([]entities.QuoteItem, len(it.Items))
	for i, l := range it.Items {
		lines[i] = entities.QuoteItem{
			Service:     entities.ServiceCode(l.Service),
			Description: l.Description,
			Price:       l.Price,
			Quantity:    l.Quantity,
		}
	}
	return entities.Quote{
		ID:             it.ID,
		VehicleID:      it.VehicleID,
		ClientName:     it.ClientName,
		ClientEmail:    it.ClientEmail,
		Items:          lines,
		QuoteTotals:    entities.QuoteTotals{Subtotal: it.Subtotal, Tax: it.Tax, Total: it.Total},
		Notes:          it.Notes,
		Status:         entities.QuoteStatus(it.Status),
		ApprovedAt:     parseTimePtr(it.ApprovedAt),
		SignatureURL:   it.SignatureURL,
		CedulaPhotoURL: it.CedulaPhotoURL,
		CreatedAt:      parseTime(it.CreatedAt),
		CreatedBy:      it.CreatedBy,
	}
}
