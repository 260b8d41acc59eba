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

const (
	defaultServiceOrdersTableName = "service_orders"
	serviceOrdersStatusIndex      = "status-index"
	serviceOrdersTechnicianIndex  = "technician-index"
)

type serviceOrderItem struct {
	ID                     string   `dynamodbav:"id"`
	VehicleID              string   `dynamodbav:"vehicle_id"`
	QuoteID                string   `dynamodbav:"quote_id,omitempty"`
	AppointmentID          string   `dynamodbav:"appointment_id,omitempty"`
	Services               []string `dynamodbav:"services"`
	Status                 string   `dynamodbav:"status"`
	AssignedTechnicianID   string   `dynamodbav:"assigned_technician_id,omitempty"`
	AssignedTechnicianName string   `dynamodbav:"assigned_technician_name,omitempty"`
	EstimatedHours         *float64 `dynamodbav:"estimated_hours,omitempty"`
	ActualHours            *float64 `dynamodbav:"actual_hours,omitempty"`
	Notes                  string   `dynamodbav:"notes,omitempty"`
	StartedAt              string   `dynamodbav:"started_at,omitempty"`
	CompletedAt            string   `dynamodbav:"completed_at,omitempty"`
	CreatedAt              string   `dynamodbav:"created_at"`
	CreatedBy              string   `dynamodbav:"created_by"`
}

// ServiceOrderDynamoRepository persists service orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//   - GSI: technician-index (PK: assigned_technician_id)
type ServiceOrderDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb DynamoDBAPI, tableName string) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultServiceOrdersTableName)}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toServiceOrderItem(o)); err != nil {
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	var it serviceOrderItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

// List queries the technician index when a technician is given, else the status index,
// and falls back to a scan without filters.
func (r *ServiceOrderDynamoRepository) List(ctx context.Context, filter interfaces.ServiceOrderFilter) ([]entities.ServiceOrder, error) {
	var (
		raw []item
		err error
	)
	switch {
	case filter.TechnicianID != "":
		in := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(serviceOrdersTechnicianIndex),
			KeyConditionExpression: aws.String("assigned_technician_id = :tid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":tid": str(filter.TechnicianID),
			},
		}
		if filter.Status != "" {
			in.FilterExpression = aws.String("#status = :status")
			in.ExpressionAttributeNames = map[string]string{"#status": "status"}
			in.ExpressionAttributeValues[":status"] = str(string(filter.Status))
		}
		raw, err = queryAll(ctx, r.ddb, in)
	case filter.Status != "":
		raw, err = queryAll(ctx, r.ddb, r.byStatus(filter.Status))
	default:
		raw, err = scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	}
	if err != nil {
		return nil, err
	}
	return unmarshalAll(raw, fromServiceOrderItem)
}

// UpdateStatus applies from -> to only while the stored status is still from.
// Entering en_proceso stamps started_at and entering terminado stamps completed_at.
func (r *ServiceOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.ServiceStatus, at time.Time) (entities.ServiceOrder, error) {
	expr := "SET #status = :to"
	values := map[string]types.AttributeValue{
		":to":   str(string(to)),
		":from": str(string(from)),
	}
	names := map[string]string{"#status": "status"}
	switch to {
	case entities.ServiceStatusEnProceso:
		expr += ", #started_at = :at"
		names["#started_at"] = "started_at"
		values[":at"] = str(formatTime(at))
	case entities.ServiceStatusTerminado:
		expr += ", #completed_at = :at"
		names["#completed_at"] = "completed_at"
		values[":at"] = str(formatTime(at))
	}

	var it serviceOrderItem
	found, err := updateExisting(ctx, r.ddb, r.tableName, id, expr, "#status = :from", values, names, &it)
	if err != nil || !found {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) AssignTechnician(ctx context.Context, id, technicianID, technicianName string) (entities.ServiceOrder, error) {
	var it serviceOrderItem
	found, err := updateExisting(ctx, r.ddb, r.tableName, id,
		"SET #tid = :tid, #tname = :tname", "",
		map[string]types.AttributeValue{
			":tid":   str(technicianID),
			":tname": str(technicianName),
		},
		map[string]string{
			"#tid":   "assigned_technician_id",
			"#tname": "assigned_technician_name",
		},
		&it)
	if err != nil || !found {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) CountByStatus(ctx context.Context, status entities.ServiceStatus) (int, error) {
	return countQuery(ctx, r.ddb, r.byStatus(status))
}

func (r *ServiceOrderDynamoRepository) CountCompletedOn(ctx context.Context, day string) (int, error) {
	in := r.byStatus(entities.ServiceStatusTerminado)
	in.FilterExpression = aws.String("begins_with(#completed_at, :day)")
	in.ExpressionAttributeNames["#completed_at"] = "completed_at"
	in.ExpressionAttributeValues[":day"] = str(day)
	return countQuery(ctx, r.ddb, in)
}

func (r *ServiceOrderDynamoRepository) byStatus(status entities.ServiceStatus) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(serviceOrdersStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": str(string(status)),
		},
	}
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	return serviceOrderItem{
		ID:                     o.ID,
		VehicleID:              o.VehicleID,
		QuoteID:                o.QuoteID,
		AppointmentID:          o.AppointmentID,
		Services:               serviceCodesToStrings(o.Services),
		Status:                 string(o.Status),
		AssignedTechnicianID:   o.AssignedTechnicianID,
		AssignedTechnicianName: o.AssignedTechnicianName,
		EstimatedHours:         o.EstimatedHours,
		ActualHours:            o.ActualHours,
		Notes:                  o.Notes,
		StartedAt:              formatTimePtr(o.StartedAt),
		CompletedAt:            formatTimePtr(o.CompletedAt),
		CreatedAt:              formatTime(o.CreatedAt),
		CreatedBy:              o.CreatedBy,
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:                     it.ID,
		VehicleID:              it.VehicleID,
		QuoteID:                it.QuoteID,
		AppointmentID:          it.AppointmentID,
		Services:               stringsToServiceCodes(it.Services),
		Status:                 entities.ServiceStatus(it.Status),
		AssignedTechnicianID:   it.AssignedTechnicianID,
		AssignedTechnicianName: it.AssignedTechnicianName,
		EstimatedHours:         it.EstimatedHours,
		ActualHours:            it.ActualHours,
		Notes:                  it.Notes,
		StartedAt:              parseTimePtr(it.StartedAt),
		CompletedAt:            parseTimePtr(it.CompletedAt),
		CreatedAt:              parseTime(it.CreatedAt),
		CreatedBy:              it.CreatedBy,
	}
}
