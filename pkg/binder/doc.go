// Package binder populates request structs from an *http.Request.
//
// Each binder reads one source and one struct tag:
//
//	path:"id"      Path(extractor)
//	query:"page"   Query()
//	form:"subject" Form(), urlencoded or multipart bodies
//	file:"image"   Form(), multipart file headers
//	json:"search"  Signals(), Datastar signals
//
// Untagged fields are left alone. A binder that does not apply to the
// request, such as Form on a GET, returns ErrBinderNotApplicable so that
// handler.Wrap can move on to the next one.
package binder
