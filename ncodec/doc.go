// Package ncodec provides body decoders for registering with a
// router.  Every decoder has the same shape: it consumes a fully
// materialized body and fills a target model.
//
// The decoders are deliberately strict where the underlying format
// allows it.  JSON rejects unknown fields, trailing data, and absent
// non-pointer fields, so a model's pointer fields are its optional
// fields.  YAML rejects unknown fields.  XML is as strict as
// encoding/xml gets, which is not very.
package ncodec
