package repository

import (
	"context"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultVehiclesTableName = "vehicles"
	vehiclesPlateIndex       = "plate-index"
)

type vehicleItem struct {
	ID                     string `dynamodbav:"id"`
	Plate                  string `dynamodbav:"plate"`
	Brand                  string `dynamodbav:"brand"`
	Model                  string `dynamodbav:"model"`
	Year                   int    `dynamodbav:"year"`
	Color                  string `dynamodbav:"color"`
	VIN                    string `dynamodbav:"vin,omitempty"`
	ClientName             string `dynamodbav:"client_name"`
	ClientPhone            string `dynamodbav:"client_phone"`
	ClientEmail            string `dynamodbav:"client_email,omitempty"`
	ClientCedula           string `dynamodbav:"client_cedula,omitempty"`
	Status                 string `dynamodbav:"status,omitempty"`
	AssignedTechnicianID   string `dynamodbav:"assigned_technician_id,omitempty"`
	AssignedTechnicianName string `dynamodbav:"assigned_technician_name,omitempty"`
	CurrentServiceOrderID  string `dynamodbav:"current_service_order_id,omitempty"`
	CreatedAt              string `dynamodbav:"created_at"`
	CreatedBy              string `dynamodbav:"created_by"`
}

// VehicleDynamoRepository persists vehicles in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: plate-index (PK: plate)
type VehicleDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IVehicleRepository = (*VehicleDynamoRepository)(nil)

func NewVehicleDynamoRepository(ddb DynamoDBAPI, tableName string) *VehicleDynamoRepository {
	return &VehicleDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultVehiclesTableName)}
}

func (r *VehicleDynamoRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toVehicleItem(v)); err != nil {
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	var it vehicleItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) GetByPlate(ctx context.Context, plate string) (entities.Vehicle, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(vehiclesPlateIndex),
		KeyConditionExpression: aws.String("plate = :plate"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":plate": str(plate),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	if len(out.Items) == 0 {
		return entities.Vehicle{}, nil
	}
	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) List(ctx context.Context, status entities.VehicleStatus) ([]entities.Vehicle, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{":status": str(string(status))}
	}
	raw, err := scanAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	return unmarshalAll(raw, fromVehicleItem)
}

// Update replaces an existing vehicle. It returns the zero value when the vehicle does not exist.
func (r *VehicleDynamoRepository) Update(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	av, err := attributevalue.MarshalMap(toVehicleItem(v))
	if err != nil {
		return entities.Vehicle{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Vehicle{}, nil
		}
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.VehicleStatus) (entities.Vehicle, error) {
	var it vehicleItem
	found, err := updateExisting(ctx, r.ddb, r.tableName, id,
		"SET #status = :status", "",
		map[string]types.AttributeValue{":status": str(string(status))},
		map[string]string{"#status": "status"},
		&it)
	if err != nil || !found {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) Count(ctx context.Context) (int, error) {
	return countScan(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
}

func toVehicleItem(v entities.Vehicle) vehicleItem {
	return vehicleItem{
		ID:                     v.ID,
		Plate:                  v.Plate,
		Brand:                  v.Brand,
		Model:                  v.Model,
		Year:                   v.Year,
		Color:                  v.Color,
		VIN:                    v.VIN,
		ClientName:             v.ClientName,
		ClientPhone:            v.ClientPhone,
		ClientEmail:            v.ClientEmail,
		ClientCedula:           v.ClientCedula,
		Status:                 string(v.Status),
		AssignedTechnicianID:   v.AssignedTechnicianID,
		AssignedTechnicianName: v.AssignedTechnicianName,
		CurrentServiceOrderID:  v.CurrentServiceOrderID,
		CreatedAt:              formatTime(v.CreatedAt),
		CreatedBy:              v.CreatedBy,
	}
}

func fromVehicleItem(it vehicleItem) entities.Vehicle {
	return entities.Vehicle{
		ID:                     it.ID,
		Plate:                  it.Plate,
		Brand:                  it.Brand,
		Model:                  it.Model,
		Year:                   it.Year,
		Color:                  it.Color,
		VIN:                    it.VIN,
		ClientName:             it.ClientName,
		ClientPhone:            it.ClientPhone,
		ClientEmail:            it.ClientEmail,
		ClientCedula:           it.ClientCedula,
		Status:                 entities.VehicleStatus(it.Status),
		AssignedTechnicianID:   it.AssignedTechnicianID,
		AssignedTechnicianName: it.AssignedTechnicianName,
		CurrentServiceOrderID:  it.CurrentServiceOrderID,
		CreatedAt:              parseTime(it.CreatedAt),
		CreatedBy:              it.CreatedBy,
	}
}
