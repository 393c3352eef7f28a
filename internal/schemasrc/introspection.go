// Package schemasrc resolves the `--schema` flag into a parsed
// *ast.Schema: a raw SDL file over HTTPS, an introspection query against
// an HTTPS endpoint, or a local SDL file.
package schemasrc

type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

var builtinScalars = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
}

type FullTypes []*FullType

type FullType struct {
	Kind        TypeKind      `json:"kind"`
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Fields      []*FieldValue `json:"fields"`
	InputFields []*InputValue `json:"inputFields"`
	Interfaces  []*TypeRef    `json:"interfaces"`
	EnumValues  []*EnumValue  `json:"enumValues"`
	PossibleTypes []*TypeRef  `json:"possibleTypes"`
}

type EnumValue struct {
	Description       *string `json:"description"`
	DeprecationReason *string `json:"deprecationReason"`
	Name              string  `json:"name"`
	IsDeprecated      bool    `json:"isDeprecated"`
}

type FieldValue struct {
	Type              TypeRef       `json:"type"`
	Description       *string       `json:"description"`
	DeprecationReason *string       `json:"deprecationReason"`
	Name              string        `json:"name"`
	Args              []*InputValue `json:"args"`
	IsDeprecated      bool          `json:"isDeprecated"`
}

type InputValue struct {
	Type         TypeRef `json:"type"`
	Description  *string `json:"description"`
	DefaultValue *string `json:"defaultValue"`
	Name         string  `json:"name"`
}

type TypeRef struct {
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
	Kind   TypeKind `json:"kind"`
}

// IntrospectionResponse is the `data` payload of the standard introspection
// query.
type IntrospectionResponse struct {
	Schema struct {
		QueryType        namedRef         `json:"queryType"`
		MutationType     *namedRef        `json:"mutationType"`
		SubscriptionType *namedRef        `json:"subscriptionType"`
		Types            FullTypes        `json:"types"`
		Directives       []*DirectiveType `json:"directives"`
	} `json:"__schema"`
}

type namedRef struct {
	Name *string `json:"name"`
}

type DirectiveType struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Locations   []string      `json:"locations"`
	Args        []*InputValue `json:"args"`
}

// IntrospectionQuery is the standard GraphQL introspection document, with
// descriptions and input-value deprecation disabled.
const IntrospectionQuery = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
      locations
      args {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  fields(includeDeprecated: true) {
    name
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`
