// Package mocks holds test doubles shared by the service, api and cmd tests.
//
// Interface mocks (MockJWTService, MockPasswordVerifier) use function fields
// and record their calls. Store mocks embed a real store, usually from
// memstore, and override single methods so a test can fail one step of a
// cascade or an enrollment:
//
//	stores := memstore.New().Stores()
//	stores.Classes = &mocks.MockClassStore{
//	    ClassStore: stores.Classes,
//	    RemoveStudentFromAllFn: func(context.Context, string) (int64, error) {
//	        return 0, errors.New("connection reset")
//	    },
//	}
//
// PlainHasher replaces bcrypt where hashing cost would slow tests down.
package mocks
