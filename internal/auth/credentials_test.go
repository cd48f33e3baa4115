package auth

import "testing"

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() вернул ошибку: %v", err)
	}

	t.Run("верный пароль", func(t *testing.T) {
		ok, err := VerifyPassword("correct horse battery staple", hash)
		if err != nil {
			t.Fatalf("VerifyPassword() вернул ошибку: %v", err)
		}
		if !ok {
			t.Error("VerifyPassword() = false для верного пароля")
		}
	})

	t.Run("неверный пароль", func(t *testing.T) {
		ok, err := VerifyPassword("wrong password", hash)
		if err != nil {
			t.Fatalf("несовпадение пароля не должно быть ошибкой: %v", err)
		}
		if ok {
			t.Error("VerifyPassword() = true для неверного пароля")
		}
	})

	t.Run("повреждённый хеш", func(t *testing.T) {
		ok, err := VerifyPassword("any", "не-bcrypt-хеш")
		if err == nil {
			t.Error("VerifyPassword() с повреждённым хешем должен вернуть ошибку")
		}
		if ok {
			t.Error("VerifyPassword() = true для повреждённого хеша")
		}
	})
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword() вернул ошибку: %v", err)
	}
	h2, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword() вернул ошибку: %v", err)
	}
	if h1 == h2 {
		t.Error("два хеша одного пароля совпали, соль не применяется")
	}
}
