package providers

import (
	"errors"
	"swiperank/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tags first, then the fields whose requirement
// depends on the selected driver or source.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	switch cv.conf.Persistence.Driver {
	case "file":
		if cv.conf.Persistence.FilePath == "" {
			return errors.New("persistence.filePath is required for the file driver")
		}
	case "badger":
		if cv.conf.Persistence.BadgerDir == "" {
			return errors.New("persistence.badgerDir is required for the badger driver")
		}
	case "redis":
		if cv.conf.Persistence.Redis.Addr == "" {
			return errors.New("persistence.redis.addr is required for the redis driver")
		}
	}

	switch cv.conf.Catalog.Source {
	case "file":
		if cv.conf.Catalog.Path == "" {
			return errors.New("catalog.path is required for the file source")
		}
	case "mongo":
		m := cv.conf.Catalog.Mongo
		if m.URI == "" || m.Database == "" || m.Collection == "" {
			return errors.New("catalog.mongo.uri, database and collection are required for the mongo source")
		}
	}
	return nil
}
