package repository

import (
	"context"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultGoalsTableName = "goals"

type goalItem struct {
	UserID        string  `dynamodbav:"user_id"`
	TargetValue   float64 `dynamodbav:"target_value"`
	AchievedValue float64 `dynamodbav:"achieved_value"`
	UpdatedAt     string  `dynamodbav:"updated_at"`
}

// GoalDynamoRepository persists Goal rows in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//
// achieved_value is maintained with the ADD update action: the increment
// happens inside DynamoDB, so concurrent deltas for the same user never
// lose updates, and UpdateItem's upsert behavior creates the goal row
// lazily on the first delta.

type GoalDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IGoalRepository = (*GoalDynamoRepository)(nil)

func NewGoalDynamoRepository(ddb *dynamodb.Client) *GoalDynamoRepository {
	return &GoalDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("GOALS_TABLE", defaultGoalsTableName),
	}
}

func (r *GoalDynamoRepository) Get(ctx context.Context, userID string) (entities.Goal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Goal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Goal{}, nil
	}

	var it goalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Goal{}, err
	}
	return fromGoalItem(it), nil
}

func (r *GoalDynamoRepository) AddAchieved(ctx context.Context, userID string, delta float64) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression: aws.String("ADD #achieved_value :delta SET #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#achieved_value": "achieved_value",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta":      &types.AttributeValueMemberN{Value: floatToString(delta)},
			":updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	return err
}

func (r *GoalDynamoRepository) SetAchieved(ctx context.Context, userID string, value float64) (entities.Goal, error) {
	return r.update(ctx, userID, "SET #achieved_value = :value, #updated_at = :updated_at",
		map[string]string{"#achieved_value": "achieved_value", "#updated_at": "updated_at"},
		map[string]types.AttributeValue{":value": &types.AttributeValueMemberN{Value: floatToString(value)}})
}

func (r *GoalDynamoRepository) SetTarget(ctx context.Context, userID string, target float64) (entities.Goal, error) {
	return r.update(ctx, userID, "SET #target_value = :value, #updated_at = :updated_at",
		map[string]string{"#target_value": "target_value", "#updated_at": "updated_at"},
		map[string]types.AttributeValue{":value": &types.AttributeValueMemberN{Value: floatToString(target)}})
}

func (r *GoalDynamoRepository) update(
	ctx context.Context,
	userID string,
	updateExpr string,
	names map[string]string,
	values map[string]types.AttributeValue,
) (entities.Goal, error) {
	values[":updated_at"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Goal{}, err
	}

	var it goalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Goal{}, err
	}
	if it.UserID == "" {
		it.UserID = userID
	}
	return fromGoalItem(it), nil
}

func fromGoalItem(it goalItem) entities.Goal {
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Goal{
		UserID:        it.UserID,
		TargetValue:   it.TargetValue,
		AchievedValue: it.AchievedValue,
		UpdatedAt:     updatedAt,
	}
}
