package repository

import (
	"context"
	"strconv"

	"clearpoint_av/internal/domain/entities"
	"clearpoint_av/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultResourcesTableName = "resources"

type resourceItem struct {
	ID       string `dynamodbav:"id"`
	Name     string `dynamodbav:"name"`
	Role     string `dynamodbav:"role,omitempty"`
	Kind     string `dynamodbav:"kind"`
	CostRate string `dynamodbav:"cost_rate"`
}

// ResourceDynamoRepository reads the shared labor resource registry from
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The registry is small (a company roster), so a paginated Scan is fine.
type ResourceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IResourceRepository = (*ResourceDynamoRepository)(nil)

func NewResourceDynamoRepository(ddb *dynamodb.Client) *ResourceDynamoRepository {
	return &ResourceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("RESOURCES_TABLE", defaultResourcesTableName),
	}
}

func (r *ResourceDynamoRepository) ListResources(ctx context.Context) ([]entities.LaborResource, error) {
	var resources []entities.LaborResource

	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it resourceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			resources = append(resources, fromResourceItem(it))
		}
	}
	return resources, nil
}

func fromResourceItem(it resourceItem) entities.LaborResource {
	costRate, _ := strconv.ParseFloat(it.CostRate, 64)
	return entities.LaborResource{
		ID:       it.ID,
		Name:     it.Name,
		Role:     it.Role,
		Kind:     entities.ResourceKind(it.Kind),
		CostRate: costRate,
	}
}
