package graph

import graphql "github.com/graph-gophers/graphql-go"

// Schema is the full API surface consumed by the web client. Timestamps
// cross the boundary as ISO-8601 strings.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	enum TaskStatus {
		PENDING
		IN_PROGRESS
		COMPLETED
		CANCELLED
	}

	enum TaskSort {
		CREATED_DESC
		CREATED_ASC
		DUE_ASC
		DUE_DESC
		NAME_ASC
		NAME_DESC
	}

	type User {
		id: ID!
		email: String!
		name: String!
		createdAt: String!
		updatedAt: String!
		tasks: [Task!]!
	}

	type AuthPayload {
		token: String!
		user: User!
	}

	type Task {
		id: ID!
		taskName: String!
		description: String!
		status: TaskStatus!
		user: User!
		userId: ID!
		createdAt: String!
		updatedAt: String!
		dueDate: String
	}

	input CreateUserInput {
		email: String!
		password: String!
		name: String!
	}

	input LoginInput {
		email: String!
		password: String!
	}

	input UpdateUserInput {
		email: String
		name: String
		password: String
	}

	input CreateTaskInput {
		taskName: String!
		description: String!
		status: TaskStatus
		dueDate: String
	}

	input UpdateTaskInput {
		taskName: String
		description: String
		status: TaskStatus
		dueDate: String
	}

	input TaskFilters {
		status: TaskStatus
		sortBy: TaskSort
	}

	type Query {
		me: User
		users: [User!]!
		user(id: ID!): User
		userByEmail(email: String!): User
		taskByUser(filters: TaskFilters): [Task!]!
		taskById(id: ID!): Task
	}

	type Mutation {
		register(input: CreateUserInput!): AuthPayload!
		login(input: LoginInput!): AuthPayload!
		updateUser(id: ID!, input: UpdateUserInput!): User!
		deleteUser(id: ID!): Boolean!
		createTask(input: CreateTaskInput!): Task!
		updateTask(id: ID!, input: UpdateTaskInput!): Task!
		deleteTask(id: ID!): Boolean!
	}
`

// NewSchema parses the SDL against the root resolver. Panics on a schema/
// resolver mismatch, which is a programming error caught at startup.
func NewSchema() *graphql.Schema {
	return graphql.MustParseSchema(Schema, &Resolver{})
}
