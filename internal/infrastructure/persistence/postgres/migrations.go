package postgres

// Embedded migration SQL for the Apex Campus Hub schema.
// Applied in order by the Migrator; each migration runs in its own
// transaction.

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name    TEXT NOT NULL,
    last_name     TEXT NOT NULL DEFAULT '',
    phone_number  TEXT NOT NULL DEFAULT '',
    branch        TEXT NOT NULL DEFAULT '',
    bio           TEXT NOT NULL DEFAULT '',
    role          TEXT NOT NULL DEFAULT 'member',
    xp            INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
    level         INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
    created_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

-- Leaderboard reads: top-N by xp with id as the deterministic tie-break.
CREATE INDEX IF NOT EXISTS idx_users_xp ON users (xp DESC, id ASC);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: FOCUS (TASKS + STUDY SESSIONS)
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE TABLE IF NOT EXISTS tasks (
    id             UUID PRIMARY KEY,
    seq            BIGSERIAL NOT NULL,
    user_id        UUID NOT NULL REFERENCES users(id),
    title          TEXT NOT NULL,
    category       TEXT NOT NULL DEFAULT 'General',
    estimated_time INTEGER NOT NULL DEFAULT 0,
    priority       INTEGER NOT NULL DEFAULT 2 CHECK (priority BETWEEN 1 AND 3),
    status         TEXT NOT NULL DEFAULT 'pending'
                   CHECK (status IN ('pending', 'in_progress', 'completed')),
    created_at     TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

-- Board queries filter by owner and status, then sort by priority/seq.
CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks (user_id, status, priority DESC, seq DESC);

CREATE TABLE IF NOT EXISTS study_sessions (
    id               UUID PRIMARY KEY,
    user_id          UUID NOT NULL REFERENCES users(id),
    duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
    mode             TEXT NOT NULL DEFAULT 'focus',
    completed_at     TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

-- Day-window sums: completed_at >= start AND completed_at < next.
CREATE INDEX IF NOT EXISTS idx_sessions_user_completed ON study_sessions (user_id, completed_at);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: COMMUNITY (EVENTS, ARTICLES, LISTINGS)
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
CREATE TABLE IF NOT EXISTS events (
    id           UUID PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    location     TEXT NOT NULL DEFAULT '',
    starts_at    TIMESTAMP WITH TIME ZONE NOT NULL,
    published_by UUID NOT NULL REFERENCES users(id),
    created_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_created ON events (created_at DESC);

CREATE TABLE IF NOT EXISTS articles (
    id           UUID PRIMARY KEY,
    title        TEXT NOT NULL,
    body         TEXT NOT NULL,
    author_id    UUID NOT NULL REFERENCES users(id),
    published_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_articles_published ON articles (published_at DESC);

CREATE TABLE IF NOT EXISTS listings (
    id          UUID PRIMARY KEY,
    kind        TEXT NOT NULL CHECK (kind IN ('lost_found', 'housing', 'donation')),
    user_id     UUID NOT NULL REFERENCES users(id),
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    contact     TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'resolved')),
    created_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    resolved_at TIMESTAMP WITH TIME ZONE
);

CREATE INDEX IF NOT EXISTS idx_listings_kind_status ON listings (kind, status, created_at DESC);
`
