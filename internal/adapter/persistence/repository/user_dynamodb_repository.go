package repository

import (
	"context"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultUsersTableName = "users"
	usersRoleIndex        = "role-index"
)

type userItem struct {
	ID        string `dynamodbav:"id"`
	Email     string `dynamodbav:"email"`
	Name      string `dynamodbav:"name"`
	Role      string `dynamodbav:"role"`
	CreatedAt string `dynamodbav:"created_at"`
}

// UserDynamoRepository stores identity to role bindings.
//
// Table requirements:
//   - PK: id (string, the identity provider subject)
//   - GSI role-index: role
type UserDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, table string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableOrDefault(table, defaultUsersTableName)}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	return getUser(ctx, r.ddb, r.tableName, id)
}

func (r *UserDynamoRepository) ListByRole(ctx context.Context, role entities.Role) ([]entities.User, error) {
	var users []entities.User
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			IndexName:                aws.String(usersRoleIndex),
			KeyConditionExpression:   aws.String("#role = :role"),
			ExpressionAttributeNames: map[string]string{"#role": "role"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":role": &types.AttributeValueMemberS{Value: string(role)},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it userItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			users = append(users, fromUserItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return users, nil
}

// Upsert replaces the binding but keeps the original created_at.
func (r *UserDynamoRepository) Upsert(ctx context.Context, u entities.User) (entities.User, error) {
	up := newUserUpsert(u)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       up.key,
		UpdateExpression:          aws.String(up.expr),
		ExpressionAttributeNames:  up.names,
		ExpressionAttributeValues: up.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Attributes) == 0 {
		return u, nil
	}
	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

// userUpsert is the update shared by Upsert and invite redemption.
type userUpsert struct {
	key    map[string]types.AttributeValue
	expr   string
	names  map[string]string
	values map[string]types.AttributeValue
}

func newUserUpsert(u entities.User) userUpsert {
	return userUpsert{
		key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: u.ID},
		},
		expr: "SET #email = :email, #name = :name, #role = :role, #created_at = if_not_exists(#created_at, :created_at)",
		names: map[string]string{
			"#email":      "email",
			"#name":       "name",
			"#role":       "role",
			"#created_at": "created_at",
		},
		values: map[string]types.AttributeValue{
			":email":      &types.AttributeValueMemberS{Value: u.Email},
			":name":       &types.AttributeValueMemberS{Value: u.Name},
			":role":       &types.AttributeValueMemberS{Value: string(u.Role)},
			":created_at": &types.AttributeValueMemberS{Value: formatTime(u.CreatedAt)},
		},
	}
}

func getUser(ctx context.Context, ddb DynamoAPI, table, id string) (entities.User, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}
	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:        it.ID,
		Email:     it.Email,
		Name:      it.Name,
		Role:      entities.Role(it.Role),
		CreatedAt: parseTime(it.CreatedAt),
	}
}
