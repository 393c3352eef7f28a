package contentmodel

// entrySchemaJSON is the fixed nested JSON Schema validating a batch of
// content-model entries. The closed kind enumerations (string/number/
// boolean/datetime) are a design decision recorded in DESIGN.md.
const entrySchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://trunkery.internal/content-model-entries.json",
  "type": "array",
  "items": { "$ref": "#/$defs/entry" },
  "$defs": {
    "stringKind": { "enum": ["short_text", "long_text", "rich_text", "url", "email", "slug"] },
    "numberKind": { "enum": ["integer", "float"] },
    "booleanKind": { "enum": ["checkbox", "toggle"] },
    "datetimeKind": { "enum": ["date", "datetime", "time"] },
    "enumOption": {
      "type": "object",
      "required": ["label", "value"],
      "properties": {
        "label": { "type": "string" },
        "value": { "type": "string" }
      }
    },
    "stringValidation": {
      "type": "object",
      "properties": {
        "enum": { "type": "array", "items": { "$ref": "#/$defs/enumOption" } }
      }
    },
    "stringField": {
      "type": "object",
      "required": ["type", "kind"],
      "properties": {
        "type": { "const": "string" },
        "kind": { "$ref": "#/$defs/stringKind" },
        "validation": { "$ref": "#/$defs/stringValidation" },
        "help": { "type": "string" }
      }
    },
    "numberField": {
      "type": "object",
      "required": ["type", "kind"],
      "properties": {
        "type": { "const": "number" },
        "kind": { "$ref": "#/$defs/numberKind" },
        "validation": { "type": "object" },
        "help": { "type": "string" }
      }
    },
    "booleanField": {
      "type": "object",
      "required": ["type", "kind"],
      "properties": {
        "type": { "const": "boolean" },
        "kind": { "$ref": "#/$defs/booleanKind" },
        "help": { "type": "string" }
      }
    },
    "datetimeField": {
      "type": "object",
      "required": ["type", "kind"],
      "properties": {
        "type": { "const": "datetime" },
        "kind": { "$ref": "#/$defs/datetimeKind" },
        "help": { "type": "string" }
      }
    },
    "nonObjectField": {
      "oneOf": [
        { "$ref": "#/$defs/stringField" },
        { "$ref": "#/$defs/numberField" },
        { "$ref": "#/$defs/booleanField" },
        { "$ref": "#/$defs/datetimeField" }
      ]
    },
    "subField": {
      "allOf": [
        { "$ref": "#/$defs/nonObjectField" },
        {
          "type": "object",
          "required": ["name"],
          "properties": {
            "name": { "type": "string" },
            "label": { "type": "string" }
          }
        }
      ]
    },
    "objectField": {
      "type": "object",
      "required": ["type", "fields"],
      "properties": {
        "type": { "const": "object" },
        "fields": { "type": "array", "items": { "$ref": "#/$defs/subField" } },
        "help": { "type": "string" }
      }
    },
    "fieldShape": {
      "oneOf": [
        { "$ref": "#/$defs/nonObjectField" },
        { "$ref": "#/$defs/objectField" }
      ]
    },
    "entry": {
      "type": "object",
      "required": ["name", "json"],
      "properties": {
        "name": { "type": "string" },
        "label": { "type": "string" },
        "json": { "$ref": "#/$defs/fieldShape" }
      }
    }
  }
}`
