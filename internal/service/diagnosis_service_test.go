package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
)

// memStore 内存对象存储，测试用
type memStore struct {
	objects map[string][]byte
	failing bool // 为 true 时 Upload 必然失败，模拟上游故障
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.failing {
		return "", fmt.Errorf("storage unavailable")
	}
	m.objects[key] = data
	return key, nil
}

func (m *memStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// fixedClassifier 总是返回同一条诊断结果，测试用
type fixedClassifier struct {
	result model.DiagnosisResult
}

func (f *fixedClassifier) Classify(_ context.Context, _ string, _ []byte) (*model.DiagnosisResult, error) {
	picked := f.result
	return &picked, nil
}

func newDiagnosisService(db *gorm.DB, store *memStore, classifier ImageClassifier) *DiagnosisService {
	return NewDiagnosisService(
		repository.NewUserRepository(db),
		repository.NewDiagnosisRepository(db),
		store,
		classifier,
	)
}

func TestRandomClassifierPicksFromCandidates(t *testing.T) {
	c := NewRandomClassifier()

	// 多次调用，每次结果都必须来自候选集，置信度在 [0, 1] 内
	for i := 0; i < 50; i++ {
		result, err := c.Classify(context.Background(), "leaf.jpg", []byte("fake"))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)

		found := false
		for _, candidate := range diseaseCandidates {
			if candidate.Disease == result.Disease &&
				candidate.Confidence == result.Confidence &&
				candidate.Treatment == result.Treatment {
				found = true
				break
			}
		}
		assert.True(t, found, "result %q not in candidate set", result.Disease)
	}
}

func TestRandomClassifierReturnsCopy(t *testing.T) {
	c := NewRandomClassifier()

	result, err := c.Classify(context.Background(), "leaf.jpg", nil)
	require.NoError(t, err)

	// 修改返回值不应该污染候选集
	result.Disease = "mutated"
	for _, candidate := range diseaseCandidates {
		assert.NotEqual(t, "mutated", candidate.Disease)
	}
}

func TestAnalyzePipeline(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	store := newMemStore()
	classifier := &fixedClassifier{result: diseaseCandidates[0]}
	s := newDiagnosisService(db, store, classifier)

	reply, err := s.Analyze(context.Background(), user.ID, "leaf.jpg", []byte("fake image"), "image/jpeg")
	require.NoError(t, err)

	// 图片已上传
	assert.Len(t, store.objects, 1)

	// 诊断记录已落库
	require.NotNil(t, reply.Diagnosis)
	assert.NotZero(t, reply.Diagnosis.ID)
	assert.Equal(t, user.ID, reply.Diagnosis.UserID)
	assert.Equal(t, "Late Blight", reply.Diagnosis.DiseaseDetected)
	assert.Equal(t, 0.92, reply.Diagnosis.Confidence)

	// 回复内嵌诊断结果和图片地址
	require.NotNil(t, reply.Reply.DiagnosisResult)
	assert.Equal(t, "Late Blight", reply.Reply.DiagnosisResult.Disease)
	assert.True(t, reply.Reply.HasImage)
	assert.Contains(t, reply.Reply.ImageURL, "https://cdn.example.com/")
	assert.Contains(t, reply.Reply.Content, "Late Blight")
	assert.Contains(t, reply.Reply.Content, "92.0%")
}

func TestAnalyzeValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newDiagnosisService(db, newMemStore(), &fixedClassifier{result: diseaseCandidates[0]})

	// 图片为空
	_, err := s.Analyze(context.Background(), user.ID, "leaf.jpg", nil, "image/jpeg")
	assert.ErrorIs(t, err, ErrValidation)

	// 用户ID缺失
	_, err = s.Analyze(context.Background(), 0, "leaf.jpg", []byte("fake"), "image/jpeg")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnalyzeUnknownUser(t *testing.T) {
	db := newTestDB(t)
	s := newDiagnosisService(db, newMemStore(), &fixedClassifier{result: diseaseCandidates[0]})

	_, err := s.Analyze(context.Background(), 9999, "leaf.jpg", []byte("fake"), "image/jpeg")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAnalyzeUploadFailure(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	store := newMemStore()
	store.failing = true
	s := newDiagnosisService(db, store, &fixedClassifier{result: diseaseCandidates[0]})

	_, err := s.Analyze(context.Background(), user.ID, "leaf.jpg", []byte("fake"), "image/jpeg")
	assert.ErrorIs(t, err, ErrUpstream)

	// 上传失败时不应该落库
	var count int64
	require.NoError(t, db.Model(&model.Diagnosis{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaveDiagnosisConfidenceBounds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newDiagnosisService(db, newMemStore(), &fixedClassifier{result: diseaseCandidates[0]})

	_, err := s.SaveDiagnosis(context.Background(), user.ID, "path", "disease", "solution", -0.1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SaveDiagnosis(context.Background(), user.ID, "path", "disease", "solution", 1.1)
	assert.ErrorIs(t, err, ErrValidation)

	// 边界值合法
	diagnosis, err := s.SaveDiagnosis(context.Background(), user.ID, "path", "disease", "solution", 1.0)
	require.NoError(t, err)
	assert.NotZero(t, diagnosis.ID)
	assert.False(t, diagnosis.DiagnosisDate.IsZero())
}

func TestHistoryOrdering(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newDiagnosisService(db, newMemStore(), &fixedClassifier{result: diseaseCandidates[0]})

	for i := 0; i < 3; i++ {
		_, err := s.SaveDiagnosis(context.Background(), user.ID, fmt.Sprintf("path-%d", i), "disease", "solution", 0.5)
		require.NoError(t, err)
	}

	history, err := s.History(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestDeleteDiagnosisOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db)
	s := newDiagnosisService(db, newMemStore(), &fixedClassifier{result: diseaseCandidates[0]})

	diagnosis, err := s.SaveDiagnosis(context.Background(), owner.ID, "path", "disease", "solution", 0.5)
	require.NoError(t, err)

	// 其他用户不能删除
	err = s.Delete(context.Background(), owner.ID+1, diagnosis.ID)
	assert.ErrorIs(t, err, ErrNoPermission)

	// 不存在的记录
	err = s.Delete(context.Background(), owner.ID, 9999)
	assert.ErrorIs(t, err, ErrDiagnosisNotFound)

	// 所有者可以删除
	require.NoError(t, s.Delete(context.Background(), owner.ID, diagnosis.ID))

	history, err := s.History(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGuessContentType(t *testing.T) {
	assert.Equal(t, "image/png", guessContentType("leaf.PNG"))
	assert.Equal(t, "image/webp", guessContentType("leaf.webp"))
	assert.Equal(t, "image/gif", guessContentType("leaf.gif"))
	assert.Equal(t, "image/jpeg", guessContentType("leaf.jpg"))
	assert.Equal(t, "image/jpeg", guessContentType("unknown"))
}
