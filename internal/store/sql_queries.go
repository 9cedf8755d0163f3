package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Z3ron7/server/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `user_id, username, password, name, gender, image, school_id, status, role, is_verified, otp, reset_token, token_version, created_at`

const (
	createUser = `INSERT INTO users (username, password, name, gender, image, school_id, status, role, is_verified)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING user_id, created_at;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	listUsersByState = `SELECT ` + userColumns + `
    FROM users
    WHERE is_verified = $1
    ORDER BY created_at, user_id;`

	listVerifiedExamTakers = `SELECT ` + userColumns + `
    FROM users
    WHERE status IN ('student', 'alumni') AND is_verified = 1
    ORDER BY user_id;`

	setOTP = `UPDATE users SET otp = $2 WHERE user_id = $1;`

	// the guard makes redeem a single compare-and-set: a concurrent admin
	// decision or a re-issued code turns it into a no-op.
	redeemOTP = `UPDATE users
    SET is_verified = 1, otp = NULL
    WHERE user_id = $1 AND otp = $2 AND is_verified = 0;`

	setVerificationState = `UPDATE users SET is_verified = $2, otp = NULL WHERE user_id = $1;`

	setResetToken = `UPDATE users SET reset_token = $2 WHERE user_id = $1;`

	resetPassword = `UPDATE users
    SET password = $2, reset_token = NULL, token_version = token_version + 1
    WHERE reset_token = $1
    RETURNING user_id;`

	getTokenVersion = `SELECT token_version FROM users WHERE user_id = $1;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`

	userStats = `SELECT status, is_verified, COUNT(*)
    FROM users
    WHERE is_verified IN (0, 1) AND status IN ('student', 'alumni')
    GROUP BY status, is_verified;`
)

const (
	findProgramIDByName    = `SELECT program_id FROM program WHERE program_name = $1;`
	findCompetencyIDByName = `SELECT competency_id FROM competency WHERE competency_name = $1;`

	createQuestion = `INSERT INTO question (question_text, program_id, competency_id)
    VALUES ($1, $2, $3)
    RETURNING question_id;`

	updateQuestion = `UPDATE question
    SET question_text = $2, program_id = $3, competency_id = $4
    WHERE question_id = $1;`

	deleteChoices  = `DELETE FROM choices WHERE question_id = $1;`
	deleteQuestion = `DELETE FROM question WHERE question_id = $1;`

	fetchQuestionRows = `SELECT q.question_id, q.program_id, p.program_name, q.competency_id, c.competency_name,
        q.question_text, ch.choice_id, ch.choice_text, ch.is_correct
    FROM question q
    JOIN program p ON q.program_id = p.program_id
    JOIN competency c ON q.competency_id = c.competency_id
    JOIN choices ch ON q.question_id = ch.question_id
    ORDER BY q.question_id DESC, ch.choice_id;`

	searchQuestionText = `SELECT question_id, program_id, competency_id, question_text, created_at
    FROM question
    WHERE question_text ILIKE $1
    ORDER BY question_id DESC;`
)

const (
	listPrograms     = `SELECT program_id, program_name FROM program ORDER BY program_id;`
	listCompetencies = `SELECT competency_id, competency_name FROM competency ORDER BY competency_id;`
	listRooms        = `SELECT room_id, room_name, created_at FROM room ORDER BY room_name;`
	createRoom       = `INSERT INTO room (room_name) VALUES ($1) RETURNING room_id, created_at;`
)

const (
	saveUserExam = `INSERT INTO user_exams (user_id, program_id, competency_id, start_time, end_time, score)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_exam_id;`

	saveRoomSession = `INSERT INTO exam_room (user_id, room_id, program_id, competency_id, start_time, end_time, score)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING exam_room_id;`

	latestActivity = `SELECT user_id, program_id, competency_id, end_time, score FROM (
        SELECT user_id, program_id, competency_id, end_time, score
        FROM user_exams
        WHERE user_id = $1
        UNION
        SELECT user_id, program_id, competency_id, end_time, score
        FROM exam_room
        WHERE user_id = $1
    ) AS combined
    ORDER BY end_time DESC
    LIMIT $2;`

	userActivities = `SELECT user_id, program_id, competency_id, start_time, end_time, score FROM (
        SELECT user_id, program_id, competency_id, start_time, end_time, score
        FROM user_exams
        WHERE user_id = $1
        UNION
        SELECT user_id, program_id, competency_id, start_time, end_time, score
        FROM exam_room
        WHERE user_id = $1
    ) AS combined
    ORDER BY end_time DESC;`

	roomSessionColumns = `er.exam_room_id, er.user_id, er.room_id, er.program_id, er.competency_id,
        er.start_time, er.end_time, er.score, u.name, u.image, r.room_name`

	roomSessions = `SELECT ` + roomSessionColumns + `
    FROM exam_room er
    LEFT JOIN users u ON er.user_id = u.user_id
    LEFT JOIN room r ON er.room_id = r.room_id
    ORDER BY er.end_time DESC;`

	rankings = `SELECT ` + roomSessionColumns + `
    FROM exam_room er
    LEFT JOIN users u ON er.user_id = u.user_id
    LEFT JOIN room r ON er.room_id = r.room_id
    WHERE er.competency_id = $1
    ORDER BY er.room_id, er.score ASC;`
)

// likeEscaper neutralizes LIKE wildcards in user input so the filter is a
// plain substring match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildFindQuestionsQuery builds the question listing with choices joined
// in. Every non-empty filter field adds one conjunct:
//   - Program: program name contains the value;
//   - Competency: competency name contains the value;
//   - Search: question text or any of its choices contains the value.
//
// Matching is case-insensitive. An empty filter lists the whole bank.
func buildFindQuestionsQuery(filter models.QuestionFilter) (string, []any, error) {
	query := psql.
		Select("q.question_id", "q.program_id", "q.competency_id", "q.question_text", "c.choice_id", "c.choice_text", "c.is_correct").
		From("question AS q").
		LeftJoin("choices AS c ON q.question_id = c.question_id")

	if filter.Program != "" {
		query = query.Where(
			"q.program_id IN (SELECT program_id FROM program WHERE program_name ILIKE ?)",
			containsPattern(filter.Program),
		)
	}

	if filter.Competency != "" {
		query = query.Where(
			"q.competency_id IN (SELECT competency_id FROM competency WHERE competency_name ILIKE ?)",
			containsPattern(filter.Competency),
		)
	}

	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(sq.Or{
			sq.Expr("q.question_text ILIKE ?", pattern),
			sq.Expr("EXISTS (SELECT 1 FROM choices AS s WHERE s.question_id = q.question_id AND s.choice_text ILIKE ?)", pattern),
		})
	}

	return query.OrderBy("q.question_id DESC", "c.choice_id").ToSql()
}

// buildUpdateUserQuery builds a partial profile update touching only the
// non-nil fields of update. It fails when update carries nothing to change.
func buildUpdateUserQuery(update models.UserUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrBuildingSQLQuery
	}

	query := psql.Update(models.User{}.TableName())

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Username != nil {
		query = query.Set("username", *update.Username)
	}
	if update.Image != nil {
		query = query.Set("image", *update.Image)
	}

	return query.
		Where(sq.Eq{"user_id": update.UserID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
}

// buildInsertChoicesQuery builds one multi-row INSERT for all choices of a
// question.
func buildInsertChoicesQuery(questionID int64, choices []models.Choice) (string, []any, error) {
	if len(choices) == 0 {
		return "", nil, ErrBuildingSQLQuery
	}

	query := psql.Insert("choices").Columns("question_id", "choice_text", "is_correct")
	for _, choice := range choices {
		query = query.Values(questionID, choice.ChoiceText, choice.IsCorrect)
	}

	return query.ToSql()
}
