package source

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
)

// Mongo reads a dataset stored as a single document. The document's
// name/value/children fields follow the JSON dataset layout; other fields
// are ignored.
type Mongo struct {
	uri        string
	database   string
	collection string
	id         string

	coll *mongo.Collection
}

// ParseMongo parses "mongodb://host/<database>#<collection>/<id>".
func ParseMongo(location string) (*Mongo, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse mongo location")
	}
	db := strings.Trim(u.Path, "/")
	coll, id, ok := strings.Cut(u.Fragment, "/")
	if db == "" || !ok || coll == "" || id == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"mongo location must look like mongodb://host/<database>#<collection>/<id>")
	}
	u.Fragment = ""
	return &Mongo{uri: u.String(), database: db, collection: coll, id: id}, nil
}

// NewMongo reads document id from an already connected collection.
func NewMongo(coll *mongo.Collection, id string) *Mongo {
	return &Mongo{
		database:   coll.Database().Name(),
		collection: coll.Name(),
		id:         id,
		coll:       coll,
	}
}

func (m *Mongo) Kind() string { return "mongo" }

func (m *Mongo) Location() string {
	return "mongodb://" + m.database + "/" + m.collection + "/" + m.id
}

// Fetch loads the document and re-encodes it as JSON. When the source was
// parsed from a location, a client is connected for the call and
// disconnected afterwards.
func (m *Mongo) Fetch(ctx context.Context) ([]byte, error) {
	coll := m.coll
	if coll == nil {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
		}
		defer client.Disconnect(context.WithoutCancel(ctx))
		coll = client.Database(m.database).Collection(m.collection)
	}

	var raw hierarchy.RawRecord
	err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: m.id}}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "no dataset %q in %s.%s", m.id, m.database, m.collection)
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read dataset %q", m.id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read dataset %q", m.id)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode dataset %q", m.id)
	}
	return data, nil
}
