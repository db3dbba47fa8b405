package sql

// Schema is accepted by both DuckDB and PostgreSQL.
// Record tables carry no key constraints: a mirror deletes and re-inserts
// the same ids inside one transaction, which DuckDB indexes reject.
const InstitutesTableSchema = `
	CREATE TABLE IF NOT EXISTS institutes (
		id VARCHAR NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'active',
		header_text VARCHAR,
		footer_text VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const StudentsTableSchema = `
	CREATE TABLE IF NOT EXISTS students (
		institute_id VARCHAR NOT NULL,
		id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		class_or_course VARCHAR,
		fee_amount VARCHAR,
		fee_next_due_date VARCHAR,
		fee_status VARCHAR,
		fee_updated_at TIMESTAMP,
		guidance_text VARCHAR,
		guidance_updated_at TIMESTAMP,
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const AttendanceTableSchema = `
	CREATE TABLE IF NOT EXISTS attendance (
		institute_id VARCHAR NOT NULL,
		id VARCHAR NOT NULL,
		student_id VARCHAR NOT NULL,
		attendance_date VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		marked_at TIMESTAMP NOT NULL
	);
`

const TestsTableSchema = `
	CREATE TABLE IF NOT EXISTS tests (
		institute_id VARCHAR NOT NULL,
		id VARCHAR NOT NULL,
		student_id VARCHAR NOT NULL,
		subject VARCHAR NOT NULL,
		marks_obtained DOUBLE PRECISION NOT NULL,
		max_marks DOUBLE PRECISION NOT NULL,
		test_date VARCHAR,
		created_at TIMESTAMP NOT NULL
	);
`

const MirrorStateTableSchema = `
	CREATE TABLE IF NOT EXISTS mirror_state (
		institute_id VARCHAR NOT NULL PRIMARY KEY,
		source VARCHAR NOT NULL,
		students INTEGER NOT NULL,
		attendance INTEGER NOT NULL,
		tests INTEGER NOT NULL,
		mirrored_at TIMESTAMP NOT NULL
	);
`

var Schema = []string{
	InstitutesTableSchema,
	StudentsTableSchema,
	AttendanceTableSchema,
	TestsTableSchema,
	MirrorStateTableSchema,
}
