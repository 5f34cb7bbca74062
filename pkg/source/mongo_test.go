package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/matzehuels/treezoom/pkg/errors"
)

func TestMongoFetch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "nyt"},
			{Key: "name", Value: "All"},
			{Key: "children", Value: bson.A{
				bson.D{{Key: "name", Value: "A"}, {Key: "value", Value: 30.0}},
				bson.D{{Key: "name", Value: "B"}, {Key: "children", Value: bson.A{
					bson.D{{Key: "name", Value: "B1"}, {Key: "value", Value: 10.0}},
				}}},
			}},
		}))

		raw, _, err := Load(context.Background(), NewMongo(mt.Coll, "nyt"))

		require.NoError(mt, err)
		assert.Equal(mt, "All", raw.Name)
		require.Len(mt, raw.Children, 2)
		require.NotNil(mt, raw.Children[0].Value)
		assert.Equal(mt, 30.0, *raw.Children[0].Value)
		assert.Equal(mt, "B1", raw.Children[1].Children[0].Name)
	})

	mt.Run("missing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewMongo(mt.Coll, "nope").Fetch(context.Background())

		assert.True(mt, errors.Is(err, errors.ErrCodeNotFound))
	})
}
