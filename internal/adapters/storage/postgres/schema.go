package postgres

// SchemaV1 crea todas las tablas. Los FKs hijos borran en cascada.
const SchemaV1 = `
CREATE TABLE IF NOT EXISTS petcare_versions (
	component  TEXT PRIMARY KEY,
	version    BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	id                       BIGSERIAL PRIMARY KEY,
	username                 VARCHAR(50) UNIQUE NOT NULL,
	password                 VARCHAR(100) NOT NULL,
	email                    VARCHAR(255),
	notification_preferences JSONB NOT NULL DEFAULT '{"push": false, "email": false}',
	created_at               TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pets (
	id           BIGSERIAL PRIMARY KEY,
	owner_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name         VARCHAR(50) NOT NULL,
	species      VARCHAR(50) NOT NULL,
	breed        VARCHAR(100),
	birth_date   DATE,
	gender       VARCHAR(10) NOT NULL DEFAULT 'unknown',
	weight       NUMERIC,
	image_url    TEXT,
	last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets(owner_id);

CREATE TABLE IF NOT EXISTS weight_history (
	id          BIGSERIAL PRIMARY KEY,
	pet_id      BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
	weight      NUMERIC NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_weight_history_pet ON weight_history(pet_id, recorded_at DESC);

CREATE TABLE IF NOT EXISTS pet_diary_entries (
	id             BIGSERIAL PRIMARY KEY,
	pet_id         BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
	notes          TEXT,
	mood           VARCHAR(10) CHECK (mood IN ('happy', 'normal', 'sad')),
	weight         NUMERIC,
	food_intake    TEXT,
	activity_level VARCHAR(10) CHECK (activity_level IN ('high', 'normal', 'low')),
	health_notes   TEXT,
	entry_date     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_diary_pet_date ON pet_diary_entries(pet_id, entry_date DESC);

CREATE TABLE IF NOT EXISTS pet_media (
	id          BIGSERIAL PRIMARY KEY,
	entry_id    BIGINT NOT NULL REFERENCES pet_diary_entries(id) ON DELETE CASCADE,
	media_type  VARCHAR(10) NOT NULL CHECK (media_type IN ('photo', 'video')),
	file_path   TEXT NOT NULL,
	description TEXT
);
CREATE INDEX IF NOT EXISTS idx_pet_media_entry ON pet_media(entry_id);

CREATE TABLE IF NOT EXISTS feeding_schedules (
	id           BIGSERIAL PRIMARY KEY,
	pet_id       BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
	feeding_time TIME NOT NULL,
	frequency    VARCHAR(20) NOT NULL DEFAULT 'daily',
	food_type    VARCHAR(100) NOT NULL,
	amount       VARCHAR(50),
	notes        TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_feeding_pet ON feeding_schedules(pet_id, feeding_time);
`
