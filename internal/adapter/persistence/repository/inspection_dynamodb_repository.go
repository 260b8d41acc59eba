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
	defaultInspectionsTableName = "inspections"
	inspectionsVehicleIDIndex   = "vehicle_id-index"
)

type inspectionAreaItem struct {
	Area      string `dynamodbav:"area"`
	Condition string `dynamodbav:"condition"`
	Notes     string `dynamodbav:"notes,omitempty"`
	HasDamage bool   `dynamodbav:"has_damage"`
}

type inspectionItem struct {
	ID             string               `dynamodbav:"id"`
	VehicleID      string               `dynamodbav:"vehicle_id"`
	ServiceOrderID string               `dynamodbav:"service_order_id,omitempty"`
	Items          []inspectionAreaItem `dynamodbav:"items"`
	GeneralNotes   string               `dynamodbav:"general_notes,omitempty"`
	Photos         []string             `dynamodbav:"photos"`
	CreatedAt      string               `dynamodbav:"created_at"`
	CreatedBy      string               `dynamodbav:"created_by"`
}

// InspectionDynamoRepository persists 360 inspections in DynamoDB.
// Photos are stored as object storage keys, never as image data.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: vehicle_id-index (PK: vehicle_id)
type InspectionDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IInspectionRepository = (*InspectionDynamoRepository)(nil)

func NewInspectionDynamoRepository(ddb DynamoDBAPI, tableName string) *InspectionDynamoRepository {
	return &InspectionDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultInspectionsTableName)}
}

func (r *InspectionDynamoRepository) Create(ctx context.Context, i entities.Inspection) (entities.Inspection, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toInspectionItem(i)); err != nil {
		return entities.Inspection{}, err
	}
	return i, nil
}

func (r *InspectionDynamoRepository) ListByVehicleID(ctx context.Context, vehicleID string) ([]entities.Inspection, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(inspectionsVehicleIDIndex),
		KeyConditionExpression: aws.String("vehicle_id = :vid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vid": str(vehicleID),
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalAll(raw, fromInspectionItem)
}

func toInspectionItem(i entities.Inspection) inspectionItem {
	items := make([]inspectionAreaItem, len(i.Items))
	for n, it := range i.Items {
		items[n] = inspectionAreaItem{
			Area:      it.Area,
			Condition: string(it.Condition),
			Notes:     it.Notes,
			HasDamage: it.HasDamage,
		}
	}
	photos := i.Photos
	if photos == nil {
		photos = []string{}
	}
	return inspectionItem{
		ID:             i.ID,
		VehicleID:      i.VehicleID,
		ServiceOrderID: i.ServiceOrderID,
		Items:          items,
		GeneralNotes:   i.GeneralNotes,
		Photos:         photos,
		CreatedAt:      formatTime(i.CreatedAt),
		CreatedBy:      i.CreatedBy,
	}
}

func fromInspectionItem(it inspectionItem) entities.Inspection {
	items := make([]entities.InspectionItem, len(it.Items))
	for n, a := range it.Items {
		items[n] = entities.InspectionItem{
			Area:      a.Area,
			Condition: entities.Condition(a.Condition),
			Notes:     a.Notes,
			HasDamage: a.HasDamage,
		}
	}
	photos := it.Photos
	if photos == nil {
		photos = []string{}
	}
	return entities.Inspection{
		ID:             it.ID,
		VehicleID:      it.VehicleID,
		ServiceOrderID: it.ServiceOrderID,
		Items:          items,
		GeneralNotes:   it.GeneralNotes,
		Photos:         photos,
		CreatedAt:      parseTime(it.CreatedAt),
		CreatedBy:      it.CreatedBy,
	}
}
