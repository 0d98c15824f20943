/*
Package server implements the request-processing pipeline.

A Server dispatches requests against the collections of a jdb.Database.
The routing convention is

	/{collection}
	/{collection}/{id}
	/{collection}/{id}/{childCollection}
	/{collection}/{id}/{childCollection}/{childId}

with arbitrary depth, always alternating collection name and numeric id.
GET supports query-string filters (any key=value pair) plus the reserved
parameters _sort and _order.

Registered middlewares run ahead of the dispatcher in
last-added-runs-first order; each may short-circuit with its own response
or forward the request and post-process the result. Two middlewares ship
with the package: StaticRoutes answers pre-recorded responses for fixed
method/path pairs and BasicAuth gates everything behind HTTP basic
authentication.

Domain errors are mapped centrally to the JSON error envelope

	{"statusCode": 404, "message": "Not Found"}

so method handlers only ever return errors, never format error responses
themselves.
*/
package server
